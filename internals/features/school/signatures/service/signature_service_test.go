package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"attendly_backend/internals/features/school/signatures/model"
)

type fakeBlob struct {
	objects map[string][]byte

	uploadErr error
	deleteErr error
	deletes   []string
}

func newFakeBlob() *fakeBlob {
	return &fakeBlob{objects: map[string][]byte{}}
}

func (f *fakeBlob) UploadBytes(_ context.Context, dir, filename string, data []byte, _ string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	key := dir + "/" + filename
	f.objects[key] = data
	return key, nil
}

func (f *fakeBlob) DeleteObject(_ context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeBlob) PublicURL(key string) string { return "https://cdn.example.com/" + key }

func TestSaveCaptureHappyPath(t *testing.T) {
	blob := newFakeBlob()

	var inserted *model.StudentSignatureModel
	store := &CaptureStore{
		Blob: blob,
		Insert: func(_ context.Context, row *model.StudentSignatureModel) error {
			inserted = row
			return nil
		},
	}

	stid := uuid.New()
	row, err := store.Save(context.Background(), SaveCaptureInput{
		StudentID:   stid,
		FileName:    "sig.webp",
		ContentType: "image/webp",
		Data:        []byte{0x52, 0x49, 0x46, 0x46},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if inserted == nil {
		t.Fatal("metadata row was not inserted")
	}
	if row.StudentSignatureStudentID != stid {
		t.Errorf("student id = %s, want %s", row.StudentSignatureStudentID, stid)
	}
	if row.StudentSignatureFileSize != 4 {
		t.Errorf("file size = %d, want 4", row.StudentSignatureFileSize)
	}
	if _, ok := blob.objects[row.StudentSignatureObjectKey]; !ok {
		t.Errorf("object %s missing from blob store", row.StudentSignatureObjectKey)
	}
	if row.StudentSignatureURL == "" {
		t.Error("public URL not set")
	}
}

func TestSaveCaptureRollsBackObjectOnInsertFailure(t *testing.T) {
	blob := newFakeBlob()
	insertErr := errors.New("insert failed")

	store := &CaptureStore{
		Blob:   blob,
		Insert: func(context.Context, *model.StudentSignatureModel) error { return insertErr },
	}

	_, err := store.Save(context.Background(), SaveCaptureInput{
		StudentID:   uuid.New(),
		FileName:    "sig.webp",
		ContentType: "image/webp",
		Data:        []byte("payload"),
	})
	if !errors.Is(err, insertErr) {
		t.Fatalf("err = %v, want insert failure", err)
	}
	if len(blob.objects) != 0 {
		t.Errorf("blob store holds %d orphaned objects, want 0", len(blob.objects))
	}
	if len(blob.deletes) != 1 {
		t.Errorf("delete called %d times, want 1", len(blob.deletes))
	}
}

func TestSaveCaptureDoesNotInsertWhenUploadFails(t *testing.T) {
	blob := newFakeBlob()
	blob.uploadErr = errors.New("bucket unreachable")

	inserts := 0
	store := &CaptureStore{
		Blob: blob,
		Insert: func(context.Context, *model.StudentSignatureModel) error {
			inserts++
			return nil
		},
	}

	_, err := store.Save(context.Background(), SaveCaptureInput{
		StudentID:   uuid.New(),
		FileName:    "sig.webp",
		ContentType: "image/webp",
		Data:        []byte("payload"),
	})
	if err == nil {
		t.Fatal("expected upload error")
	}
	if inserts != 0 {
		t.Errorf("insert called %d times before upload succeeded, want 0", inserts)
	}
}

func TestSaveCaptureSurvivesRollbackDeleteFailure(t *testing.T) {
	blob := newFakeBlob()
	blob.deleteErr = errors.New("delete refused")
	insertErr := errors.New("insert failed")

	store := &CaptureStore{
		Blob:   blob,
		Insert: func(context.Context, *model.StudentSignatureModel) error { return insertErr },
	}

	_, err := store.Save(context.Background(), SaveCaptureInput{
		StudentID:   uuid.New(),
		FileName:    "sig.webp",
		ContentType: "image/webp",
		Data:        []byte("payload"),
	})
	// the insert error wins; the failed delete is the reaper's problem
	if !errors.Is(err, insertErr) {
		t.Fatalf("err = %v, want insert failure", err)
	}
}
