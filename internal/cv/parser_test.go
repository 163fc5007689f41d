package cv_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"talentmatch-backend/internal/cv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile(t *testing.T) {
	t.Run("Should extract text from a plain text file", func(t *testing.T) {
		p := cv.NewParser(t.TempDir())

		parsed, err := p.ParseFile("cv.txt", strings.NewReader(sampleText))
		require.NoError(t, err)
		assert.Equal(t, "cv.txt", parsed.Filename)
		assert.Equal(t, ".txt", parsed.FileType)
		assert.Equal(t, int64(len(sampleText)), parsed.FileSize)
		assert.Equal(t, sampleText, parsed.FullText)
	})

	t.Run("Should reject unsupported extensions", func(t *testing.T) {
		p := cv.NewParser(t.TempDir())

		_, err := p.ParseFile("cv.exe", strings.NewReader("x"))
		assert.Error(t, err)
	})

	t.Run("Should keep concurrent uploads of the same filename apart", func(t *testing.T) {
		p := cv.NewParser(t.TempDir())

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				content := fmt.Sprintf("Profil numéro %d", n)
				parsed, err := p.ParseFile("cv.txt", strings.NewReader(content))
				if assert.NoError(t, err) {
					assert.Equal(t, content, parsed.FullText)
				}
			}(i)
		}
		wg.Wait()
	})
}
