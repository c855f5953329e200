// Package gwd provides the validation and clickthrough rewriting policies
// for packages exported by Google Web Designer.
package gwd
