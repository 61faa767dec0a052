// Package codec (de)serializes typed values to the raw bytes a hoard server
// stores. The server is payload-agnostic; codecs live entirely on the client
// side.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
