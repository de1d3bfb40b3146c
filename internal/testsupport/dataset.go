package testsupport

import (
	"path/filepath"
	"testing"
)

// Dataset is a small darknet-style dataset laid out under a temp directory.
type Dataset struct {
	Root        string
	ImageDir    string
	LabelDir    string
	SourceNames string
	TargetNames string
}

// NewDataset writes the source vocabulary person/car/dog, the target
// vocabulary dog/person, and three annotated images:
//
//	img1: person + car  -> one surviving line
//	img2: car only      -> no output file, excluded from the manifest
//	img3: dog, in a nested directory, with a .PNG extension
//
// plus an unlabelled image "orphan.jpg".
func NewDataset(t testing.TB) *Dataset {
	t.Helper()

	root := t.TempDir()
	ds := &Dataset{
		Root:        root,
		ImageDir:    filepath.Join(root, "images"),
		LabelDir:    filepath.Join(root, "labels"),
		SourceNames: filepath.Join(root, "all.names"),
		TargetNames: filepath.Join(root, "target.names"),
	}

	WriteLines(t, ds.SourceNames, "# full vocabulary", "person", "car", "", "dog")
	WriteLines(t, ds.TargetNames, "dog", "person")

	WriteFile(t, filepath.Join(ds.ImageDir, "img1.jpg"), "jpg")
	WriteFile(t, filepath.Join(ds.ImageDir, "img2.jpg"), "jpg")
	WriteFile(t, filepath.Join(ds.ImageDir, "nested", "img3.PNG"), "png")
	WriteFile(t, filepath.Join(ds.ImageDir, "orphan.jpg"), "jpg")
	WriteFile(t, filepath.Join(ds.ImageDir, "notes.md"), "not an image")

	WriteLines(t, filepath.Join(ds.LabelDir, "img1.txt"), "0 0.5 0.5 0.1 0.1", "1 0.2 0.2 0.1 0.1")
	WriteLines(t, filepath.Join(ds.LabelDir, "img2.txt"), "1 0.2 0.2 0.1 0.1")
	WriteLines(t, filepath.Join(ds.LabelDir, "sub", "img3.txt"), "# reviewed", "2 0.300 0.40 0.05 0.0600")

	return ds
}
