// Package analyze provides package loading and function signature
// extraction.
//
// It uses golang.org/x/tools/go/packages with go/types to index the
// exported functions of the packages implementing declared operations, so
// that declared argument names can be checked against real parameter
// names and positional calls can be mapped to keyword arguments.
//
// Key types:
//   - FuncID: package import path + function name
//   - FuncInfo: ordered parameters of one function
//   - SignatureIndex: every indexed function by FuncID
package analyze
