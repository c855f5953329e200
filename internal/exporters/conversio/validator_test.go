package conversio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
)

// stubFiles implements driven.FileLister and driven.FileReader for testing.
type stubFiles struct {
	files     []string
	markup    string
	listErr   error
	readErr   error
	listCalls int
	readCalls int
}

func (s *stubFiles) ListFiles(_ context.Context, _ string) ([]string, error) {
	s.listCalls++
	return s.files, s.listErr
}

func (s *stubFiles) ReadText(_ context.Context, _ string) (string, error) {
	s.readCalls++
	return s.markup, s.readErr
}

func (s *stubFiles) ReadBytes(_ context.Context, _ string) ([]byte, error) {
	s.readCalls++
	return []byte(s.markup), s.readErr
}

const conversioMarkup = `<image src="images/test-image.png"/>`

func validate(stub *stubFiles, basename, dir string) error {
	return NewValidator(stub, stub).Validate(context.Background(), basename, dir)
}

func TestValidator_CallsDependencies(t *testing.T) {
	stub := &stubFiles{files: []string{"testZipFile.html"}, markup: conversioMarkup}

	require.NoError(t, validate(stub, "testZipFile", "testUploadDirectory"))
	assert.Equal(t, 1, stub.listCalls)
	assert.Equal(t, 1, stub.readCalls)
}

func TestValidator_Accepts(t *testing.T) {
	tests := []struct {
		name     string
		basename string
		files    []string
	}{
		{"exact basename", "conversio-test-a", []string{"conversio-test-a.html", "images/test-image.png"}},
		{"parens in archive name", "conversio-test-a (1)", []string{"conversio-test-a.html", "images/test-image.png"}},
		{"foo (1) contains foo", "foo (1)", []string{"foo.html"}},
		{"nested root folder", "banner", []string{"/extract/banner/banner/index.html"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubFiles{files: tt.files, markup: conversioMarkup}

			assert.NoError(t, validate(stub, tt.basename, "/extract/banner"))
		})
	}
}

func TestValidator_Rejects(t *testing.T) {
	t.Run("missing root html", func(t *testing.T) {
		stub := &stubFiles{markup: "<meta/>"}

		err := validate(stub, "conversio-test-a", "testUploadDirectory")

		assert.ErrorIs(t, err, domain.ErrMissingRootHTML)
		assert.Equal(t, "Zip file does not contain a root .html file", err.Error())
	})

	t.Run("empty root html", func(t *testing.T) {
		stub := &stubFiles{files: []string{"conversio-test-a.html"}, markup: ""}

		err := validate(stub, "conversio-test-a", "testUploadDirectory")

		assert.ErrorIs(t, err, domain.ErrEmptyRootHTML)
	})

	t.Run("basename mismatch", func(t *testing.T) {
		stub := &stubFiles{files: []string{"conversio-test-b.html", "images/test-image.png"}, markup: conversioMarkup}

		err := validate(stub, "conversio-test-a (1)", "testUploadDirectory")

		require.Error(t, err)
		assert.Equal(t, "Zip file name 'conversio-test-a (1)' does not contain basename 'conversio-test-b'", err.Error())
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, domain.CodeBasenameMismatch, verr.Code)
		assert.Equal(t, "conversio-test-a (1)", verr.Archive)
		assert.Equal(t, "conversio-test-b", verr.RootBasename)
		assert.Equal(t, 0, stub.readCalls, "mismatch is detected before reading markup")
	})

	t.Run("foo (1) does not contain bar", func(t *testing.T) {
		stub := &stubFiles{files: []string{"bar.html"}, markup: conversioMarkup}

		err := validate(stub, "foo (1)", "")

		assert.Equal(t, domain.NewBasenameMismatch("foo (1)", "bar"), err)
	})

	t.Run("list failure is not a validation error", func(t *testing.T) {
		cause := errors.New("no such directory")
		stub := &stubFiles{listErr: cause}

		err := validate(stub, "a", "dir")

		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, domain.ErrMissingRootHTML)
	})
}

func TestRootBasename(t *testing.T) {
	tests := []struct {
		root string
		dir  string
		want string
	}{
		{"banner.html", "", "banner"},
		{"/extract/pkg/banner.html", "/extract/pkg", "banner"},
		{"/extract/pkg/banner.html", "/extract/pkg/", "banner"},
		{"/extract/pkg/banner/index.html", "/extract/pkg", "banner"},
		{"/extract/pkg/a/b/index.html", "/extract/pkg", "a"},
		{"index.html.orig", "", "index"},
	}

	for _, tt := range tests {
		t.Run(tt.root, func(t *testing.T) {
			assert.Equal(t, tt.want, RootBasename(tt.root, tt.dir))
		})
	}
}
