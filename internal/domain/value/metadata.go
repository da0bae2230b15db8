package value

// Metadata is an opaque payload attached to a deal by its source. The
// pipeline stores and returns it but never inspects it.
type Metadata []byte

func (m Metadata) IsEmpty() bool {
	return len(m) == 0
}

func (m Metadata) String() string {
	return string(m)
}
