package server

import (
	"fmt"
	"image"
	"net/http"
	"strconv"

	"github.com/disintegration/imaging"

	"github.com/percept-vision/percept/imgproc"
)

// handleInvert inverts an uploaded image and returns it as PNG.
func (s *Server) handleInvert(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	img, err := s.readUploadedImage(r)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	imageOpsTotal.WithLabelValues("invert").Inc()

	out := imgproc.InvertImage(img)
	w.Header().Set("Content-Type", "image/png")
	if err := imaging.Encode(w, out, imaging.PNG); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
	}
}

// handleThreshold binarizes an uploaded image and returns it as PNG.
// Optional query parameters threshold and max_value override the
// configured defaults.
func (s *Server) handleThreshold(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	threshold := s.config.ImageThreshold
	maxValue := s.config.ImageMaxValue
	var err error
	if threshold, err = queryUint8(r, "threshold", threshold); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if maxValue, err = queryUint8(r, "max_value", maxValue); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	img, err := s.readUploadedImage(r)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	imageOpsTotal.WithLabelValues("threshold").Inc()

	out := imgproc.ThresholdImage(img, threshold, maxValue)
	w.Header().Set("Content-Type", "image/png")
	if err := imaging.Encode(w, out, imaging.PNG); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
	}
}

// readUploadedImage extracts and decodes the "image" multipart field.
func (s *Server) readUploadedImage(r *http.Request) (image.Image, error) {
	maxBytes := int64(s.config.MaxUploadMB) << 20
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		return nil, fmt.Errorf("missing image file: %w", err)
	}
	defer func() { _ = file.Close() }()

	img, err := imaging.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

func queryUint8(r *http.Request, name string, fallback uint8) (uint8, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q (must be 0-255)", name, raw)
	}
	return uint8(v), nil
}
