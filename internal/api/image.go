package api

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nfnt/resize"
)

// maxImageWidth is the width recipe photos are scaled down to.
const maxImageWidth = 800

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}

// UploadImage attaches a photo to the workbench recipe as a data URL.
func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("get form err: %s", err.Error()))
		return
	}

	extension := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[extension] {
		c.String(http.StatusBadRequest, "Invalid file type. Only JPEG, JPG, and PNG images are allowed.")
		return
	}

	src, err := file.Open()
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("open file err: %s", err.Error()))
		return
	}
	defer src.Close()

	imageData, err := io.ReadAll(src)
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("read image err: %s", err.Error()))
		return
	}

	dataURL, err := encodeImage(imageData, extension)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	s := h.Workbench.SetImage(dataURL)
	h.persist(c.Request.Context())
	c.JSON(http.StatusOK, newWorkbenchResponse(s))
}

// encodeImage scales wide images down to maxImageWidth and returns a data URL.
func encodeImage(imageData []byte, extension string) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = resize.Resize(maxImageWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	var mime string
	switch extension {
	case ".jpeg", ".jpg":
		mime = "image/jpeg"
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	case ".png":
		mime = "image/png"
		err = png.Encode(&buf, img)
	default:
		return "", fmt.Errorf("unsupported image format: %s", extension)
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
