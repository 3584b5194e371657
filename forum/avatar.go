// forum/avatar.go
package forum

import (
	"bytes"
	"fmt"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// DefaultAvatarSize is the edge length used when no size is configured.
const DefaultAvatarSize = 100

var boldFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(gobold.TTF)
})

// GenerateAvatar rasterizes a badge for the user: the stored avatar color
// as a solid background with the upper-cased first letter of the username
// centered over it in white. The image is regenerated on every call and
// returned as encoded PNG bytes.
func GenerateAvatar(user User, width, height int) ([]byte, error) {
	parsed, err := boldFont()
	if err != nil {
		return nil, fmt.Errorf("parse avatar font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(height) * 0.6,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build avatar font face: %w", err)
	}
	defer face.Close()

	dc := gg.NewContext(width, height)
	dc.SetHexColor(user.AvatarColor)
	dc.Clear()
	dc.SetFontFace(face)
	dc.SetRGB(1, 1, 1)
	letter := string(initialFor(user.Username))
	dc.DrawStringAnchored(letter, float64(width)/2, float64(height)/2, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}
	return buf.Bytes(), nil
}

// initialFor picks the glyph drawn on the avatar. An empty username has no
// first character, so it renders as a placeholder.
func initialFor(username string) rune {
	r, _ := utf8.DecodeRuneInString(username)
	if r == utf8.RuneError {
		return '?'
	}
	return unicode.ToUpper(r)
}
