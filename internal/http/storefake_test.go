package http

import (
	"context"
	"sync"

	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/model"
)

// fakeStore is an in-memory Store for handler tests. Listings return newest
// first to match the SQL repositories.
type fakeStore struct {
	mu        sync.Mutex
	users     map[string]model.User
	issues    []model.Issue
	lostFound []model.LostFoundItem
	posts     []model.Post

	listPostsCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]model.User{}}
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (f *fakeStore) GetUserByID(_ context.Context, id string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) CreateUser(_ context.Context, user model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return model.ErrDuplicateEmail
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeStore) CreateIssue(_ context.Context, issue model.Issue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issues = append(f.issues, issue)
	return nil
}

func (f *fakeStore) joinCreatorLocked(issue model.Issue) model.Issue {
	if user, ok := f.users[issue.CreatedBy]; ok {
		issue.CreatorName = user.Name
		issue.CreatorEmail = user.Email
	}
	return issue
}

func (f *fakeStore) ListIssues(_ context.Context, createdBy string) ([]model.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	issues := []model.Issue{}
	for i := len(f.issues) - 1; i >= 0; i-- {
		issue := f.issues[i]
		if createdBy != "" && issue.CreatedBy != createdBy {
			continue
		}
		issues = append(issues, f.joinCreatorLocked(issue))
	}
	return issues, nil
}

func (f *fakeStore) GetIssue(_ context.Context, issueID string) (model.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, issue := range f.issues {
		if issue.ID == issueID {
			return f.joinCreatorLocked(issue), nil
		}
	}
	return model.Issue{}, model.ErrNotFound
}

func (f *fakeStore) UpdateIssueStatus(_ context.Context, issueID, status string) (model.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, issue := range f.issues {
		if issue.ID == issueID {
			f.issues[i].Status = status
			return f.joinCreatorLocked(f.issues[i]), nil
		}
	}
	return model.Issue{}, model.ErrNotFound
}

func (f *fakeStore) DeleteIssue(_ context.Context, issueID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, issue := range f.issues {
		if issue.ID == issueID {
			f.issues = append(f.issues[:i], f.issues[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

func (f *fakeStore) CreateLostFound(_ context.Context, item model.LostFoundItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lostFound = append(f.lostFound, item)
	return nil
}

func (f *fakeStore) ListLostFound(_ context.Context) ([]model.LostFoundItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := []model.LostFoundItem{}
	for i := len(f.lostFound) - 1; i >= 0; i-- {
		items = append(items, f.lostFound[i])
	}
	return items, nil
}

func (f *fakeStore) GetLostFound(_ context.Context, itemID string) (model.LostFoundItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.lostFound {
		if item.ID == itemID {
			return item, nil
		}
	}
	return model.LostFoundItem{}, model.ErrNotFound
}

func (f *fakeStore) UpdateLostFound(_ context.Context, item model.LostFoundItem) (model.LostFoundItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.lostFound {
		if existing.ID == item.ID {
			f.lostFound[i] = item
			return item, nil
		}
	}
	return model.LostFoundItem{}, model.ErrNotFound
}

func (f *fakeStore) DeleteLostFound(_ context.Context, itemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, item := range f.lostFound {
		if item.ID == itemID {
			f.lostFound = append(f.lostFound[:i], f.lostFound[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

func (f *fakeStore) CreatePost(_ context.Context, post model.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append(f.posts, post)
	return nil
}

func (f *fakeStore) ListPosts(_ context.Context, postType string) ([]model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listPostsCalls++
	posts := []model.Post{}
	for i := len(f.posts) - 1; i >= 0; i-- {
		post := f.posts[i]
		if postType != "" && post.Type != postType {
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (f *fakeStore) GetPost(_ context.Context, postID string) (model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, post := range f.posts {
		if post.ID == postID {
			return post, nil
		}
	}
	return model.Post{}, model.ErrNotFound
}

func (f *fakeStore) UpdatePost(_ context.Context, post model.Post) (model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.posts {
		if existing.ID == post.ID {
			f.posts[i] = post
			return post, nil
		}
	}
	return model.Post{}, model.ErrNotFound
}

func (f *fakeStore) DeletePost(_ context.Context, postID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, post := range f.posts {
		if post.ID == postID {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}
