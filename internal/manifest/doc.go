/*
Package manifest loads the HCL project description into the model.

A project is a single project.hcl at the project root:

	project {
	  name = "sample"
	}

	target "host" {
	  props = {
	    arch  = "x86_64"
	    debug = true
	  }
	  tool "cc" {
	    cmd = "clang"
	  }
	  tool "ld" {
	    cmd = "clang"
	  }
	}

	component "core" {
	  kind = "lib"
	}

	component "app" {
	  kind     = "exe"
	  requires = ["core"]
	}

Component directories default to the component id, relative to the
manifest's directory. Prop values are restricted to bool, string, and
number; the loader rejects anything else before the model escapes this
package.
*/
package manifest
