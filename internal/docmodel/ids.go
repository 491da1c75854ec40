package docmodel

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

// SectionRef computes the deterministic section_ref for a section of
// docsetID, per spec.md section 4.5: docset_id + ":" + first 16 hex chars
// of SHA-1(file_path + "|" + anchor + "|" + heading_path joined by ">").
func SectionRef(docsetID, filePath, anchor string, headingPath []string) string {
	sum := sha1.Sum([]byte(filePath + "|" + anchor + "|" + strings.Join(headingPath, ">")))
	return docsetID + ":" + hex.EncodeToString(sum[:])[:16]
}

// DocRef computes the deterministic doc_ref for chunk index i of a
// section, per spec.md section 4.5: docset_id + ":" + first 16 hex chars
// of SHA-1(section_ref + ":" + i).
func DocRef(docsetID, sectionRef string, chunkIndex int) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s:%d", sectionRef, chunkIndex)))
	return docsetID + ":" + hex.EncodeToString(sum[:])[:16]
}

// AnchorFromHeadingID derives a fallback anchor from a section's file
// path and heading path when the heading element carries no id
// attribute, per spec.md section 4.3: "#sec-" + first 12 hex chars of
// SHA-1(file_path + "|" + " > ".join(heading_path)).
func AnchorFromHeadingID(filePath string, headingPath []string) string {
	sum := sha1.Sum([]byte(filePath + "|" + strings.Join(headingPath, " > ")))
	return "#sec-" + hex.EncodeToString(sum[:])[:12]
}
