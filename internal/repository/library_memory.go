package repository

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rami151/laboissimlocal-sub000/internal/model"
)

// PublicationRepo stores publications in memory, newest first on List.
type PublicationRepo struct {
	mu   sync.Mutex
	seq  int
	pubs map[string]*model.Publication
}

func NewPublicationRepo() *PublicationRepo {
	return &PublicationRepo{pubs: make(map[string]*model.Publication)}
}

func (r *PublicationRepo) List(ctx context.Context) ([]model.Publication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Publication, 0, len(r.pubs))
	for _, p := range r.pubs {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PostedAt.After(out[j].PostedAt) })
	return out, nil
}

func (r *PublicationRepo) Create(ctx context.Context, title, abstract string, postedBy model.ProjectRef) (model.Publication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	p := model.Publication{
		ID:       strconv.Itoa(r.seq),
		Title:    title,
		Abstract: abstract,
		PostedBy: postedBy,
		PostedAt: time.Now().UTC(),
	}
	copied := p
	r.pubs[p.ID] = &copied
	return p, nil
}

// Update edits a publication; only the poster may edit.
func (r *PublicationRepo) Update(ctx context.Context, id, editorID, title, abstract string) (model.Publication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pubs[id]
	if !ok {
		return model.Publication{}, ErrNotFound
	}
	if p.PostedBy.ID != editorID {
		return model.Publication{}, ErrForbidden
	}
	p.Title = title
	p.Abstract = abstract
	return *p, nil
}

// Delete removes a publication; only the poster may delete.
func (r *PublicationRepo) Delete(ctx context.Context, id, callerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pubs[id]
	if !ok {
		return ErrNotFound
	}
	if p.PostedBy.ID != callerID {
		return ErrForbidden
	}
	delete(r.pubs, id)
	return nil
}

// FileRepo stores uploaded documents (metadata plus content) in memory.
type FileRepo struct {
	mu      sync.Mutex
	seq     int
	files   map[string]*model.UserFile
	content map[string][]byte
}

func NewFileRepo() *FileRepo {
	return &FileRepo{files: make(map[string]*model.UserFile), content: make(map[string][]byte)}
}

func (r *FileRepo) List(ctx context.Context) ([]model.UserFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.UserFile, 0, len(r.files))
	for _, f := range r.files {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (r *FileRepo) Create(ctx context.Context, name, fileType string, data []byte, uploadedBy model.ProjectRef) (model.UserFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	f := model.UserFile{
		ID:         strconv.Itoa(r.seq),
		Name:       name,
		URL:        "/media/user_files/" + strconv.Itoa(r.seq) + "/" + name,
		UploadedAt: time.Now().UTC(),
		FileType:   fileType,
		Size:       int64(len(data)),
		UploadedBy: uploadedBy,
	}
	copied := f
	r.files[f.ID] = &copied
	r.content[f.ID] = data
	return f, nil
}

// Delete removes an upload; only the uploader may delete their own files.
func (r *FileRepo) Delete(ctx context.Context, id, callerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok {
		return ErrNotFound
	}
	if f.UploadedBy.ID != callerID {
		return ErrForbidden
	}
	delete(r.files, id)
	delete(r.content, id)
	return nil
}

// ContentRepo holds the singleton site-content record.
type ContentRepo struct {
	mu      sync.Mutex
	content model.SiteContent
}

func NewContentRepo() *ContentRepo { return &ContentRepo{} }

func (r *ContentRepo) Get(ctx context.Context) (model.SiteContent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.content, nil
}

// Put merges a partial update into the singleton, get-or-create style.
func (r *ContentRepo) Put(ctx context.Context, partial model.SiteContent) (model.SiteContent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.content = r.content.Merge(partial)
	return r.content, nil
}

// ProfileRepo keeps one profile per account, created empty on first access.
type ProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*model.Profile
}

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{profiles: make(map[string]*model.Profile)}
}

func (r *ProfileRepo) Get(ctx context.Context, userID string) (model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[userID]; ok {
		return *p, nil
	}
	r.profiles[userID] = &model.Profile{}
	return model.Profile{}, nil
}

func (r *ProfileRepo) Put(ctx context.Context, userID string, p model.Profile) (model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := p
	r.profiles[userID] = &copied
	return p, nil
}
