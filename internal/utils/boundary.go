package utils

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const boundaryAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateBoundary returns a MIME boundary token made of the current time and a random suffix.
func GenerateBoundary() string {
	id, err := gonanoid.Generate(boundaryAlphabet, 16)
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("boundary_%d_%s", time.Now().UnixMicro(), id)
}
