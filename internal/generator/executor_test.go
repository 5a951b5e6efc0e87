package generator_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eddwinpaz/ez-cli/internal/generator"
)

type fixedStrategy struct {
	answers []generator.ConflictResolution
	calls   int
}

func (s *fixedStrategy) Resolve(path string, existing, newer []byte) (generator.ConflictResolution, error) {
	r := s.answers[s.calls]
	s.calls++
	return r, nil
}

func writeOp(path, content string) *generator.WriteFileOp {
	return &generator.WriteFileOp{Path: path, Content: []byte(content), Mode: 0644}
}

func TestExecute_DryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")

	var buf bytes.Buffer
	err := generator.Execute(context.Background(), []generator.Operation{writeOp(path, "hello")}, generator.ExecuteOptions{
		DryRun: true,
		Writer: &buf,
	})
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "dry run created file")
	assert.Contains(t, buf.String(), "[DRY RUN] Create "+path)
}

func TestExecute_RealRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "test.txt")

	var buf bytes.Buffer
	err := generator.Execute(context.Background(), []generator.Operation{writeOp(path, "hello")}, generator.ExecuteOptions{Writer: &buf})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
	assert.Contains(t, buf.String(), "✓ Create "+path+" (5 bytes)")
}

func TestExecute_ExistingFileWithoutResolverFailsValidation(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "exists.txt")
	fresh := filepath.Join(dir, "fresh.txt")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0644))

	err := generator.Execute(context.Background(),
		[]generator.Operation{writeOp(fresh, "new"), writeOp(existing, "new")},
		generator.ExecuteOptions{Writer: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	_, err = os.Stat(fresh)
	assert.True(t, os.IsNotExist(err), "no operation may run when validation fails")
}

func TestExecute_Force(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exists.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	var buf bytes.Buffer
	err := generator.Execute(context.Background(), []generator.Operation{writeOp(path, "new")},
		generator.ExecuteOptions{Force: true, Writer: &buf})
	require.NoError(t, err)

	content, _ := os.ReadFile(path)
	assert.Equal(t, "new", string(content))
	assert.Contains(t, buf.String(), "✓ Overwrite "+path)
}

func TestExecute_Resolver(t *testing.T) {
	tests := []struct {
		name     string
		answers  []generator.ConflictResolution
		want     string
		wantErr  error
		contains string
	}{
		{name: "overwrite", answers: []generator.ConflictResolution{generator.Overwrite}, want: "new", contains: "✓ Overwrite"},
		{name: "skip", answers: []generator.ConflictResolution{generator.Skip}, want: "old", contains: "• Skip"},
		{name: "diff then overwrite", answers: []generator.ConflictResolution{generator.ShowDiff, generator.Overwrite}, want: "new", contains: "+++ "},
		{name: "cancel", answers: []generator.ConflictResolution{generator.Cancel}, want: "old", wantErr: generator.ErrCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "exists.txt")
			require.NoError(t, os.WriteFile(path, []byte("old\n"), 0644))

			strategy := &fixedStrategy{answers: tt.answers}
			var buf bytes.Buffer
			err := generator.Execute(context.Background(), []generator.Operation{writeOp(path, "new\n")},
				generator.ExecuteOptions{Resolver: generator.NewResolverWithStrategy(strategy), Writer: &buf})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Contains(t, buf.String(), tt.contains)
			}

			content, _ := os.ReadFile(path)
			assert.Equal(t, tt.want+"\n", string(content))
			assert.Equal(t, len(tt.answers), strategy.calls)
		})
	}
}

func TestExecute_UnchangedFileIsNotRewritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "same.txt")
	require.NoError(t, os.WriteFile(path, []byte("same"), 0644))

	strategy := &fixedStrategy{}
	var buf bytes.Buffer
	err := generator.Execute(context.Background(), []generator.Operation{writeOp(path, "same")},
		generator.ExecuteOptions{Resolver: generator.NewResolverWithStrategy(strategy), Writer: &buf})
	require.NoError(t, err)

	assert.Equal(t, 0, strategy.calls)
	assert.Contains(t, buf.String(), "• Unchanged "+path)
}

func TestExecute_CancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := generator.Execute(ctx, []generator.Operation{writeOp(path, "x")}, generator.ExecuteOptions{Writer: &bytes.Buffer{}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteFileOp_Validate(t *testing.T) {
	dir := t.TempDir()

	op := &generator.WriteFileOp{Path: dir, Content: []byte("x")}
	assert.ErrorContains(t, op.Validate(context.Background(), true), "is a directory")

	op = &generator.WriteFileOp{Path: filepath.Join(dir, "nil.txt")}
	assert.ErrorContains(t, op.Validate(context.Background(), false), "content is nil")

	op = &generator.WriteFileOp{Path: filepath.Join(dir, "empty.txt"), Content: []byte{}}
	assert.NoError(t, op.Validate(context.Background(), false))
}

type previewOp struct {
	path          string
	before, after string
}

func (p *previewOp) Validate(ctx context.Context, force bool) error { return nil }
func (p *previewOp) Execute(ctx context.Context) error               { return nil }
func (p *previewOp) Description() string                             { return "Update " + p.path }
func (p *previewOp) Preview(ctx context.Context) (string, []byte, []byte, bool, error) {
	return p.path, []byte(p.before), []byte(p.after), p.before != p.after, nil
}

func TestExecute_DryRunPrintsPreviewDiff(t *testing.T) {
	op := &previewOp{path: "Program.cs", before: "a\nb\n", after: "a\ninserted\nb\n"}

	var buf bytes.Buffer
	err := generator.Execute(context.Background(), []generator.Operation{op}, generator.ExecuteOptions{DryRun: true, Writer: &buf})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[DRY RUN] Update Program.cs")
	assert.Contains(t, out, "+++ Program.cs")
	assert.Contains(t, out, "inserted")
}
