package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"paymax/internal/domain"
	"paymax/internal/port"
)

// DocumentID derives the content-addressed cache key: a hash of the raw
// bytes plus light metadata (page count, title). Two documents with the same
// serialized content parse identically, so they deliberately share an ID.
func DocumentID(doc port.Document) (string, error) {
	raw, err := doc.Bytes()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDocumentUnreadable, err)
	}
	h := sha256.New()
	h.Write(raw)
	h.Write([]byte(strconv.Itoa(doc.PageCount())))
	h.Write([]byte(doc.Title()))
	return hex.EncodeToString(h.Sum(nil)), nil
}
