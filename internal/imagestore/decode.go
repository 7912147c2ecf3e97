// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package imagestore

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidImage is returned for input that is not base64.
var ErrInvalidImage = errors.New("image is not valid base64")

// DecodeBase64Image decodes a base64 image. A data URL prefix such as
// "data:image/png;base64," is stripped first.
func DecodeBase64Image(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		i := strings.Index(s, ",")
		if i < 0 {
			return nil, fmt.Errorf("data URL without payload: %w", ErrInvalidImage)
		}
		s = s[i+1:]
	}
	if s == "" {
		return nil, ErrEmptyImage
	}

	if len(s) > base64.StdEncoding.EncodedLen(MaxImageSize)+4 {
		return nil, ErrTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
	}
	if len(data) > MaxImageSize {
		return nil, ErrTooLarge
	}
	return data, nil
}

// EncodeBase64 returns the standard base64 encoding of data.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
