package upload

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"backoffice-service/pkg/logger"
	"backoffice-service/prometheus"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// dataURIPrefix marks an inline base64 payload. Anything else is treated as
// a reference to an already-stored file.
const dataURIPrefix = "data:image"

// extensionOffset is the position of the subtype inside the data URI header
// ("data:image/jpeg;..." carries "jpeg" starting at offset 11).
const (
	extensionOffset = 11
	extensionLength = 4
)

// Ingestor classifies incoming image entries, persists inline payloads under
// the configured upload directory, and produces the ordered filename list
// recorded on the owning product.
type Ingestor struct {
	dir string
	log *zap.Logger
}

// NewIngestor creates an Ingestor writing into dir
func NewIngestor(dir string) *Ingestor {
	return &Ingestor{dir: dir, log: logger.GetLogger()}
}

// Ingest processes incoming entries in array order and returns the product's
// new image list plus the paths of files it wrote. The caller removes the
// written files if the following metadata write fails.
//
// An inline payload that fails to decode or persist is logged, counted, and
// skipped; the operation continues with the remaining entries. An empty
// incoming slice keeps the existing list on update and yields an empty list
// on create.
func (in *Ingestor) Ingest(existing, incoming []string, ownerID uint, isCreate bool) ([]string, []string) {
	if len(incoming) == 0 {
		if isCreate {
			return []string{}, nil
		}
		return existing, nil
	}

	images := make([]string, 0, len(incoming))
	var written []string

	for index, entry := range incoming {
		if !strings.HasPrefix(entry, dataURIPrefix) {
			images = append(images, referenceBasename(entry))
			continue
		}

		filename := in.filename(entry, ownerID, index, isCreate)

		data, err := decodePayload(entry)
		if err != nil {
			in.log.Warn("Failed to decode inline image payload",
				zap.Int("index", index),
				zap.Error(err))
			prometheus.RecordUploadError("decode")
			continue
		}

		path := filepath.Join(in.dir, filename)
		if err := writeImage(path, data); err != nil {
			in.log.Warn("Failed to persist image file",
				zap.String("filename", filename),
				zap.Error(err))
			prometheus.RecordUploadError("write")
			continue
		}

		prometheus.ImageUploadCounter.Inc()
		images = append(images, filename)
		written = append(written, path)
	}

	return images, written
}

// Cleanup removes files written by a previous Ingest call. Used to roll back
// the file half of the pair when the metadata write fails.
func (in *Ingestor) Cleanup(written []string) {
	for _, path := range written {
		if err := os.Remove(path); err != nil {
			in.log.Warn("Failed to remove orphaned image file",
				zap.String("path", path),
				zap.Error(err))
		}
	}
}

// filename derives a collision-resistant name for an inline payload. Create
// uses a fresh token, update uses the owning product's id; both carry the
// array index so entries of one request never collide.
func (in *Ingestor) filename(entry string, ownerID uint, index int, isCreate bool) string {
	ext := extractExtension(entry)
	if isCreate {
		return fmt.Sprintf("p%s_%d.%s", uuid.NewString(), index, ext)
	}
	return fmt.Sprintf("p%d_%d.%s", ownerID, index, ext)
}

// extractExtension reads the declared subtype from the data URI header: the
// four characters after the fixed prefix, with a trailing separator stripped
// ("png;" becomes "png", "jpeg" stays "jpeg").
func extractExtension(entry string) string {
	if len(entry) < extensionOffset+extensionLength {
		return strings.TrimSuffix(entry[min(extensionOffset, len(entry)):], ";")
	}
	ext := entry[extensionOffset : extensionOffset+extensionLength]
	return strings.ReplaceAll(ext, ";", "")
}

// decodePayload base64-decodes the substring after the first comma
func decodePayload(entry string) ([]byte, error) {
	_, payload, found := strings.Cut(entry, ",")
	if !found {
		return nil, fmt.Errorf("data URI has no payload separator")
	}
	return base64.StdEncoding.DecodeString(payload)
}

// referenceBasename normalizes a reference to an already-stored file: strip
// surrounding quotes and keep only the final path segment.
func referenceBasename(entry string) string {
	entry = strings.ReplaceAll(entry, `"`, "")
	parts := strings.Split(entry, "/")
	return parts[len(parts)-1]
}

// writeImage persists the decoded bytes, closing the destination handle on
// every exit path.
func writeImage(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return err
	}
	return nil
}
