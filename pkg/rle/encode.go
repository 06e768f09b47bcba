package rle

import "encoding/json"

type encodedEnvelope struct {
	Size   [2]int `json:"size"`
	Counts any    `json:"counts"`
}

func marshalEnvelope(m *Mask, counts any) []byte {
	// Marshalling a fixed array and a string or []int cannot fail.
	data, _ := json.Marshal(encodedEnvelope{Size: [2]int{m.Height, m.Width}, Counts: counts})
	return data
}

// Encode encodes m as a COCO compressed RLE envelope.
func Encode(m *Mask) []byte {
	return marshalEnvelope(m, encodeCompressedString(columnMajorCounts(m)))
}

// EncodeCounts encodes m as a COCO integer counts envelope.
func EncodeCounts(m *Mask) []byte {
	return marshalEnvelope(m, columnMajorCounts(m))
}
