// Package conversio provides the validation and clickthrough rewriting
// policies for packages exported by Conversio.
package conversio
