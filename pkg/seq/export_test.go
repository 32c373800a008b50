// Only for making internals visible during testing.

package seq

var SetFastaRdSize = setFastaRdSize

const DefaultReadSize = defaultReadSize
