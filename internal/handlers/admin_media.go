// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder

	"craftpress/internal/middleware"
	"craftpress/internal/models"
)

const (
	// maxUploadSize is the maximum allowed file upload size (50 MB).
	maxUploadSize = 50 << 20

	// thumbMaxWidth is the maximum thumbnail width in pixels.
	thumbMaxWidth = 400

	// thumbQuality is the JPEG quality for generated thumbnails.
	thumbQuality = 80

	// maxImagePixels caps the number of pixels to prevent memory bombs.
	// 10000x10000 = 100 million pixels, ~400 MB decoded in RGBA.
	maxImagePixels = 100_000_000
)

// allowedMediaTypes defines MIME types accepted for upload.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"image/svg+xml":   true,
	"application/pdf": true,
}

// thumbableTypes are image types that support thumbnail generation.
// GIF is excluded to preserve animation; SVG is vector.
var thumbableTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// mediaView decorates a media row with its serving URLs.
type mediaView struct {
	models.Media
	URL      string `json:"url,omitempty"`
	ThumbURL string `json:"thumb_url,omitempty"`
}

func (a *Admin) mediaViews(items []models.Media) []mediaView {
	views := make([]mediaView, 0, len(items))
	for _, m := range items {
		mv := mediaView{Media: m}
		if a.storageClient != nil {
			mv.URL = a.storageClient.FileURL(m.S3Key)
			if m.ThumbS3Key != nil {
				mv.ThumbURL = a.storageClient.FileURL(*m.ThumbS3Key)
			}
		}
		views = append(views, mv)
	}
	return views
}

// MediaList returns media metadata with pagination and filename search.
func (a *Admin) MediaList(w http.ResponseWriter, r *http.Request) {
	p := listParams(r)
	items, total, err := a.media.List(p)
	if err != nil {
		slog.Error("list media failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	respondList(w, a.mediaViews(items), total, p)
}

// MediaUpload handles multipart file upload: content type is sniffed and
// checked against the allowlist, the object lands in the bucket under a
// year/month/uuid key, raster images get a JPEG thumbnail, and the
// metadata row goes to PostgreSQL.
func (a *Admin) MediaUpload(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		respondError(w, http.StatusServiceUnavailable, "Object storage is not configured.")
		return
	}

	sess := middleware.SessionFromCtx(r.Context())

	// Limit request body to maxUploadSize + some overhead for form fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 50 MB.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file provided.")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		respondError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 50 MB.")
		return
	}

	// Detect content type by sniffing the first 512 bytes.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		respondError(w, http.StatusInternalServerError, "Failed to read file.")
		return
	}
	contentType := http.DetectContentType(sniffBuf[:n])

	// SVG detection: DetectContentType returns text/xml or application/xml for SVGs.
	if strings.HasSuffix(strings.ToLower(header.Filename), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")) {
		contentType = "image/svg+xml"
	}

	if !allowedMediaTypes[contentType] {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("File type %q is not allowed.", contentType))
		return
	}

	// Seek back to start after sniffing.
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to process file.")
		return
	}

	// Generate a unique storage key.
	now := time.Now()
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = extensionFromType(contentType)
	}
	fileID := uuid.New().String()
	s3Key := fmt.Sprintf("media/%d/%02d/%s%s", now.Year(), now.Month(), fileID, ext)

	// Read the entire file into memory for upload and thumbnail generation.
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to read file.")
		return
	}

	ctx := r.Context()
	if err := a.storageClient.Upload(ctx, s3Key, contentType, bytes.NewReader(fileBytes), int64(len(fileBytes))); err != nil {
		slog.Error("s3 upload failed", "error", err, "key", s3Key)
		respondError(w, http.StatusInternalServerError, "Failed to upload file.")
		return
	}

	// Record image dimensions and generate a thumbnail where supported.
	var width, height *int
	var thumbKey *string
	if thumbableTypes[contentType] {
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(fileBytes)); err == nil {
			width, height = &cfg.Width, &cfg.Height
		}

		thumbData, err := generateThumbnail(bytes.NewReader(fileBytes), thumbMaxWidth)
		if err != nil {
			slog.Warn("thumbnail generation failed", "error", err, "key", s3Key)
		} else if thumbData != nil {
			tk := fmt.Sprintf("media/%d/%02d/%s_thumb.jpg", now.Year(), now.Month(), fileID)
			if err := a.storageClient.Upload(ctx, tk, "image/jpeg", bytes.NewReader(thumbData), int64(len(thumbData))); err != nil {
				slog.Warn("thumbnail upload failed", "error", err, "key", tk)
			} else {
				thumbKey = &tk
			}
		}
	}

	media := &models.Media{
		Filename:     fileID + ext,
		OriginalName: header.Filename,
		ContentType:  contentType,
		SizeBytes:    int64(len(fileBytes)),
		Bucket:       a.storageClient.Bucket(),
		S3Key:        s3Key,
		ThumbS3Key:   thumbKey,
		Width:        width,
		Height:       height,
		UploaderID:   sess.UserID,
	}
	if altText := r.FormValue("alt_text"); altText != "" {
		media.AltText = &altText
	}

	created, err := a.media.Create(media)
	if err != nil {
		slog.Error("media db insert failed", "error", err, "key", s3Key)
		respondError(w, http.StatusInternalServerError, "Failed to save file metadata.")
		return
	}

	a.kickSync()

	views := a.mediaViews([]models.Media{*created})
	respondJSON(w, http.StatusCreated, views[0])
}

// MediaGet returns one media item with its serving URLs.
func (a *Admin) MediaGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	m, err := a.media.FindByID(id)
	if err != nil {
		slog.Error("find media failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if m == nil {
		respondError(w, http.StatusNotFound, "Media not found.")
		return
	}
	views := a.mediaViews([]models.Media{*m})
	respondJSON(w, http.StatusOK, views[0])
}

// MediaDownload returns a short-lived presigned URL for the original
// object, for buckets that are not publicly readable.
func (a *Admin) MediaDownload(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		respondError(w, http.StatusServiceUnavailable, "Object storage is not configured.")
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	m, err := a.media.FindByID(id)
	if err != nil {
		slog.Error("find media failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if m == nil {
		respondError(w, http.StatusNotFound, "Media not found.")
		return
	}

	url, err := a.storageClient.PresignedURL(r.Context(), m.S3Key, 15*time.Minute)
	if err != nil {
		slog.Error("presign media failed", "error", err, "key", m.S3Key)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}

type mediaUpdateRequest struct {
	AltText *string `json:"alt_text"`
}

// MediaUpdate changes the editable metadata (alt text only; the file
// itself is immutable).
func (a *Admin) MediaUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req mediaUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := a.media.UpdateAltText(id, req.AltText)
	if err != nil {
		slog.Error("update media failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "Media not found.")
		return
	}

	views := a.mediaViews([]models.Media{*updated})
	respondJSON(w, http.StatusOK, views[0])
}

// MediaDelete removes a media item: the database row first (returned for
// cleanup), then the S3 objects best-effort. A failed object delete just
// leaves stray objects in the bucket, never a dangling row.
func (a *Admin) MediaDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	deleted, err := a.media.Delete(id)
	if err != nil {
		slog.Error("media db delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if deleted == nil {
		respondError(w, http.StatusNotFound, "Media not found.")
		return
	}

	if a.storageClient != nil {
		ctx := r.Context()
		if err := a.storageClient.Delete(ctx, deleted.S3Key); err != nil {
			slog.Warn("s3 original delete failed", "error", err, "key", deleted.S3Key)
		}
		if deleted.ThumbS3Key != nil {
			if err := a.storageClient.Delete(ctx, *deleted.ThumbS3Key); err != nil {
				slog.Warn("s3 thumbnail delete failed", "error", err, "key", *deleted.ThumbS3Key)
			}
		}
	}

	a.kickSync()
	a.invalidatePages(r)
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// MediaSync runs a reconciliation pass on demand and reports what it did.
func (a *Admin) MediaSync(w http.ResponseWriter, r *http.Request) {
	if a.syncer == nil {
		respondError(w, http.StatusServiceUnavailable, "Object storage is not configured.")
		return
	}
	report := a.syncer.Run(r.Context())
	respondJSON(w, http.StatusOK, report)
}

// kickSync triggers a background reconciliation after a media mutation.
func (a *Admin) kickSync() {
	if a.syncer != nil {
		a.syncer.Kick()
	}
}

// generateThumbnail creates a JPEG thumbnail from an image, constrained
// to maxWidth while preserving aspect ratio. Returns nil if the image is
// already smaller than maxWidth.
func generateThumbnail(src io.Reader, maxWidth int) ([]byte, error) {
	// Decode config first to check dimensions without full decode.
	imgCfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// Check for image bombs.
	if int64(imgCfg.Width)*int64(imgCfg.Height) > maxImagePixels {
		return nil, fmt.Errorf("image too large: %dx%d exceeds %d pixels", imgCfg.Width, imgCfg.Height, maxImagePixels)
	}

	// Skip thumbnail if image is already small enough.
	if imgCfg.Width <= maxWidth {
		return nil, nil
	}

	// Seek back to start for full decode.
	if seeker, ok := src.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek: %w", err)
		}
	} else {
		return nil, fmt.Errorf("source does not support seeking")
	}

	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	// Calculate thumbnail dimensions preserving aspect ratio.
	bounds := img.Bounds()
	ratio := float64(maxWidth) / float64(bounds.Dx())
	newWidth := maxWidth
	newHeight := int(float64(bounds.Dy()) * ratio)

	// Resize using CatmullRom (high quality).
	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	return buf.Bytes(), nil
}

// extensionFromType returns a file extension for known MIME types.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	case "application/pdf":
		return ".pdf"
	default:
		return ""
	}
}
