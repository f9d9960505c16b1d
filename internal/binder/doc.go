// Package binder wraps operations so that their keyword arguments run
// through the normalization pipelines of a Signature before the operation
// sees them.
//
// A Signature lists the normalized arguments of one operation in
// declaration order. Bind builds every pipeline up front, so declaration
// errors surface when the operation is wrapped rather than on the first
// call:
//
//	sig, _ := binder.NewSignature("retrieve", []*normalize.Argument{param, levtype})
//	retrieve, err := binder.Bind(sig, catalog.Retrieve)
//	if err != nil {
//		return err // configuration, conflict, consistency or merge error
//	}
//	out, err := retrieve(ctx, binder.Kwargs{"param": "2t", "levtype": "surface"})
//
// Keys without a declared argument pass through untouched.
package binder
