package crop

import (
	"encoding/json"
	"fmt"
)

// DecodePath parses serialized freehand vertices.
func DecodePath(data []byte) ([]BezierVertex, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var vertices []BezierVertex
	if err := json.Unmarshal(data, &vertices); err != nil {
		return nil, fmt.Errorf("decode path: %w", err)
	}
	return vertices, nil
}

// EncodePath serializes freehand vertices.
func EncodePath(vertices []BezierVertex) ([]byte, error) {
	return json.Marshal(vertices)
}
