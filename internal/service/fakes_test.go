package service

import (
	"TaylorDAM/internal/model"
	"TaylorDAM/internal/pkg/mail"
	"TaylorDAM/internal/repository"
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type fakeKV struct {
	mu      sync.Mutex
	values  map[string]string
	hashes  map[string]map[string]string
	hdelErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: map[string]string{}, hashes: map[string]map[string]string{}}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[key], nil
}

func (f *fakeKV) SetEX(_ context.Context, key string, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return nil
}

func (f *fakeKV) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.values, k)
	}
	return nil
}

func (f *fakeKV) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, _ := strconv.ParseInt(f.values[key], 10, 64)
	n++
	f.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (f *fakeKV) HSet(_ context.Context, key, field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hashes[key] == nil {
		f.hashes[key] = map[string]string{}
	}
	f.hashes[key][field] = value
	return nil
}

func (f *fakeKV) HGet(_ context.Context, key, field string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hashes[key][field], nil
}

func (f *fakeKV) HGetAll(_ context.Context, key string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]string{}
	for k, v := range f.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeKV) HDel(_ context.Context, key string, fields ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hdelErr != nil {
		return f.hdelErr
	}
	for _, field := range fields {
		delete(f.hashes[key], field)
	}
	return nil
}

func (f *fakeKV) TryLock(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.values[key]; ok {
		return false, nil
	}
	f.values[key] = value
	return true, nil
}

func (f *fakeKV) UnLock(_ context.Context, key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.values[key] == value {
		delete(f.values, key)
	}
}

const fakeBlobBase = "http://cdn.test/dam-media/"

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	removed []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) PresignPut(_ context.Context, key string, _ time.Duration) (string, error) {
	return "http://upload.test/dam-media/" + key + "?sig=1", nil
}

func (f *fakeStorage) Put(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return nil
}

func (f *fakeStorage) Exists(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeStorage) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.removed = append(f.removed, key)
	return nil
}

func (f *fakeStorage) PublicURL(key string) string {
	return fakeBlobBase + key
}

func (f *fakeStorage) KeyFromURL(rawURL string) (string, bool) {
	if !strings.HasPrefix(rawURL, fakeBlobBase) {
		return "", false
	}
	return strings.TrimPrefix(rawURL, fakeBlobBase), true
}

func (f *fakeStorage) put(key string) {
	_ = f.Put(context.Background(), key, bytes.NewReader([]byte("x")), 1, "image/png")
}

type fakeMailer struct {
	sent []*mail.InvitationData
	err  error
}

func (f *fakeMailer) SendInvitation(_ context.Context, data *mail.InvitationData) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.sent = append(f.sent, data)
	return true, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetUserById(_ context.Context, id uuid.UUID) (*model.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	user.ID = uuid.New()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) (int64, error) {
	u, ok := r.users[id]
	if !ok {
		return 0, nil
	}
	u.PasswordHash = passwordHash
	return 1, nil
}

type fakeInvitationRepo struct {
	invitations map[uuid.UUID]*model.Invitation
	users       *fakeUserRepo
}

func newFakeInvitationRepo(users *fakeUserRepo) *fakeInvitationRepo {
	return &fakeInvitationRepo{invitations: map[uuid.UUID]*model.Invitation{}, users: users}
}

func (r *fakeInvitationRepo) CreateInvitation(_ context.Context, invitation *model.Invitation) error {
	invitation.ID = uuid.New()
	invitation.CreatedAt = time.Now()
	r.invitations[invitation.ID] = invitation
	return nil
}

func (r *fakeInvitationRepo) GetInvitationById(_ context.Context, id uuid.UUID) (*model.Invitation, error) {
	return r.invitations[id], nil
}

func (r *fakeInvitationRepo) GetInvitationByToken(_ context.Context, token string) (*model.Invitation, error) {
	for _, inv := range r.invitations {
		if inv.Token == token {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *fakeInvitationRepo) GetActiveInvitations(_ context.Context, now time.Time) ([]*model.InvitationWithInviter, error) {
	rows := make([]*model.InvitationWithInviter, 0)
	for _, inv := range r.invitations {
		if inv.Usable(now) {
			rows = append(rows, &model.InvitationWithInviter{Invitation: *inv})
		}
	}
	return rows, nil
}

func (r *fakeInvitationRepo) DeleteInvitation(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.invitations[id]; !ok {
		return 0, nil
	}
	delete(r.invitations, id)
	return 1, nil
}

func (r *fakeInvitationRepo) DeleteExpiredInvitations(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, inv := range r.invitations {
		if inv.UsedAt == nil && inv.ExpiresAt.Before(now) {
			delete(r.invitations, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeInvitationRepo) AcceptInvitation(ctx context.Context, invitationID uuid.UUID, user *model.User, now time.Time) error {
	inv, ok := r.invitations[invitationID]
	if !ok || !inv.Usable(now) {
		return repository.ErrInvitationConsumed
	}
	if err := r.users.CreateUser(ctx, user); err != nil {
		return err
	}
	inv.UsedAt = &now
	return nil
}

type fakeFolderRepo struct {
	folders map[uuid.UUID]*model.Folder
	listed  int
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: map[uuid.UUID]*model.Folder{}}
}

func (r *fakeFolderRepo) add(name string) *model.Folder {
	f := &model.Folder{ID: uuid.New(), Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	r.folders[f.ID] = f
	return f
}

func (r *fakeFolderRepo) GetFolders(_ context.Context) ([]*model.FolderWithCount, error) {
	r.listed++
	rows := make([]*model.FolderWithCount, 0, len(r.folders))
	for _, f := range r.folders {
		rows = append(rows, &model.FolderWithCount{Folder: *f})
	}
	return rows, nil
}

func (r *fakeFolderRepo) GetFolderWithCount(_ context.Context, id uuid.UUID) (*model.FolderWithCount, error) {
	f, ok := r.folders[id]
	if !ok {
		return nil, nil
	}
	return &model.FolderWithCount{Folder: *f, CreatorName: "Admin"}, nil
}

func (r *fakeFolderRepo) GetFolderById(_ context.Context, id uuid.UUID) (*model.Folder, error) {
	return r.folders[id], nil
}

func (r *fakeFolderRepo) CreateFolder(_ context.Context, folder *model.Folder) error {
	folder.ID = uuid.New()
	r.folders[folder.ID] = folder
	return nil
}

func (r *fakeFolderRepo) UpdateFolder(_ context.Context, id uuid.UUID, updates map[string]any) (*model.Folder, error) {
	f, ok := r.folders[id]
	if !ok {
		return nil, nil
	}
	if name, ok := updates["name"].(string); ok {
		f.Name = name
	}
	if desc, ok := updates["description"].(*string); ok {
		f.Description = desc
	}
	return f, nil
}

func (r *fakeFolderRepo) DeleteFolder(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.folders[id]; !ok {
		return 0, nil
	}
	delete(r.folders, id)
	return 1, nil
}

func (r *fakeFolderRepo) ToggleStar(_ context.Context, id uuid.UUID) (*model.Folder, error) {
	f, ok := r.folders[id]
	if !ok {
		return nil, nil
	}
	f.IsStarred = !f.IsStarred
	return f, nil
}

type fakeMediaRepo struct {
	mu         sync.Mutex
	media      map[uuid.UUID]*model.MediaAsset
	tags       map[uuid.UUID][]string
	lastFilter repository.MediaFilter
	stats      model.MediaStats
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{media: map[uuid.UUID]*model.MediaAsset{}, tags: map[uuid.UUID][]string{}}
}

func (r *fakeMediaRepo) add(owner uuid.UUID, blobURL string) *model.MediaAsset {
	m := &model.MediaAsset{ID: uuid.New(), OwnerUserID: owner, BlobURL: blobURL, MimeType: "image/png", FileSize: 10}
	r.media[m.ID] = m
	return m
}

func (r *fakeMediaRepo) CreateMedia(_ context.Context, media *model.MediaAsset, tagNames []string) error {
	for _, m := range r.media {
		if m.BlobURL == media.BlobURL {
			return repository.ErrDuplicate
		}
	}
	media.ID = uuid.New()
	r.media[media.ID] = media
	r.tags[media.ID] = tagNames
	return nil
}

func (r *fakeMediaRepo) GetMediaById(_ context.Context, id uuid.UUID) (*model.MediaAsset, error) {
	return r.media[id], nil
}

func (r *fakeMediaRepo) GetMediaByBlobURL(_ context.Context, blobURL string) (*model.MediaAsset, error) {
	for _, m := range r.media {
		if m.BlobURL == blobURL {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMediaRepo) GetMediaDetail(_ context.Context, id uuid.UUID) (*model.MediaAssetRow, error) {
	m, ok := r.media[id]
	if !ok {
		return nil, nil
	}
	return &model.MediaAssetRow{MediaAsset: *m, Tags: r.tags[id]}, nil
}

func (r *fakeMediaRepo) QueryMedia(_ context.Context, filter repository.MediaFilter) ([]*model.MediaAssetRow, int64, error) {
	r.lastFilter = filter
	rows := make([]*model.MediaAssetRow, 0)
	for id, m := range r.media {
		if filter.OwnerUserID != nil && m.OwnerUserID != *filter.OwnerUserID {
			continue
		}
		rows = append(rows, &model.MediaAssetRow{MediaAsset: *m, Tags: r.tags[id]})
	}
	return rows, int64(len(rows)), nil
}

func (r *fakeMediaRepo) UpdateMedia(_ context.Context, id uuid.UUID, updates map[string]any, tagNames *[]string) error {
	m := r.media[id]
	if caption, ok := updates["caption"].(*string); ok {
		m.Caption = caption
	}
	if client, ok := updates["client_name"].(*string); ok {
		m.ClientName = client
	}
	if tagNames != nil {
		r.tags[id] = *tagNames
	}
	return nil
}

func (r *fakeMediaRepo) DeleteMedia(_ context.Context, ids []uuid.UUID) ([]*model.MediaAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted := make([]*model.MediaAsset, 0)
	for _, id := range ids {
		if m, ok := r.media[id]; ok {
			deleted = append(deleted, m)
			delete(r.media, id)
		}
	}
	return deleted, nil
}

func (r *fakeMediaRepo) MoveMedia(_ context.Context, ids []uuid.UUID, folderID *uuid.UUID) (int64, error) {
	var n int64
	for _, id := range ids {
		if m, ok := r.media[id]; ok {
			m.FolderID = folderID
			n++
		}
	}
	return n, nil
}

func (r *fakeMediaRepo) StarMedia(_ context.Context, ids []uuid.UUID, starred bool) (int64, error) {
	var n int64
	for _, id := range ids {
		if m, ok := r.media[id]; ok {
			m.IsStarred = starred
			n++
		}
	}
	return n, nil
}

func (r *fakeMediaRepo) GetMediaStats(_ context.Context) (*model.MediaStats, error) {
	return &r.stats, nil
}

type fakeTagRepo struct {
	rows []*model.TagCount
	err  error
}

func (r *fakeTagRepo) GetOrCreateTags(_ context.Context, names []string) ([]*model.Tag, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeTagRepo) GetTagsWithCount(_ context.Context) ([]*model.TagCount, error) {
	return r.rows, r.err
}
