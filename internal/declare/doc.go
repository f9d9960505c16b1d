// Package declare provides the YAML schema, parsing, validation and
// compilation of normalization declarations.
//
// A declaration file lists operations and, for each, the normalization
// rules of its arguments. Rules declared here become the primary
// constraint of an argument; an optional availability list adds the
// availability constraint.
//
// # Schema Overview
//
//	version: "1"
//	package: argnorm/catalog          # Go package implementing the operations
//	operations:
//	  - name: retrieve
//	    func: Retrieve                # defaults to the operation name
//	    availability:                 # inline, or availability_file: path
//	      - {param: [131, 132], levtype: pl}
//	      - {param: 167, levtype: sfc}
//	    arguments:
//	      - name: param
//	        normalize:
//	          type: int
//	          aliases: grib-paramid    # vocabulary table name
//	          multiple: true
//	      - name: levtype
//	        normalize:
//	          values: [sfc, pl, ml]
//	          aliases: {surface: sfc}  # inline alias -> canonical table
//	      - name: date
//	        normalize: {type: date, format: "20060102"}
//
// # Multiplicity
//
// "multiple" is tri-state: true always yields a list, false always yields
// a single value and an absent key keeps the shape the caller used.
//
// # Validation
//
// Validate reports structural problems, unknown vocabulary tables and
// every pipeline construction error as diagnostics. Compile refuses a file
// with error diagnostics and turns the rest into binder signatures.
package declare
