package utils

import (
	"fmt"
	"path"

	"github.com/google/uuid"
)

// GenerateImportFileKey builds the object-store key for an uploaded import
// file. Keys are namespaced per board so operators can inspect or purge a
// board's uploads in one prefix.
func GenerateImportFileKey(boardID uint64, filename string) string {
	ext := path.Ext(filename)
	if ext == "" {
		ext = ".json"
	}
	return fmt.Sprintf("imports/board-%d/%s%s", boardID, uuid.NewString(), ext)
}
