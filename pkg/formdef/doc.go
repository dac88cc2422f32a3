/*
Package formdef builds field configurations from declarative form
definitions.

Definitions come from YAML or JSON documents (Load, Parse) or from the
programmatic Builder. Either way the result is an ordered list of
compiled fields ready to be applied to a Form:

	def, err := formdef.Load("signup.yaml")
	if err != nil {
		log.Fatal(err)
	}
	fields, err := def.Compile()
	if err != nil {
		log.Fatal(err)
	}
	if err := formdef.Apply(form, fields); err != nil {
		log.Fatal(err)
	}

A definition document looks like:

	name: signup
	title: Create your account
	fields:
	  - name: email
	    label: Email address
	    validate_on_blur: true
	    rules:
	      - type: required
	      - type: email
	  - name: password
	    label: Password
	    rules:
	      - type: required
	      - type: min_length
	        length: 8
*/
package formdef
