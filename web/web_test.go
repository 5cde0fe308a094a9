package web

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/cinewish/internal/model"
)

func TestLoadTemplates(t *testing.T) {
	require.NotPanics(t, func() { LoadTemplates() })
}

func TestStatic(t *testing.T) {
	for _, name := range []string{"css/app.css", "js/app.js", "img/no-poster.svg"} {
		_, err := fs.Stat(Static(), name)
		assert.NoError(t, err, name)
	}
}

func TestPosterFunc(t *testing.T) {
	poster := FuncMap()["poster"].(func(model.Movie, string) string)

	path := "/abc.jpg"
	assert.Equal(t, "https://image.tmdb.org/t/p/w342/abc.jpg", poster(model.Movie{PosterPath: &path}, "w342"))
	assert.Equal(t, noPoster, poster(model.Movie{}, "w342"))
}
