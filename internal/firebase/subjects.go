package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/PramodHashantha/GPA-Calculator/internal/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const subjectsCollection = "subjects"

// subjects returns the per-user subject collection. Scoping subjects under
// the owning user document keeps every query restricted to the caller.
func (c *Firestore) subjects(userID string) *firestore.CollectionRef {
	return c.Collection(usersCollection).Doc(userID).Collection(subjectsCollection)
}

// CreateSubject stores a new subject record under its owner.
func (c *Firestore) CreateSubject(ctx context.Context, subject *types.Subject) error {
	_, err := c.subjects(subject.UserID).Doc(subject.ID).Set(ctx, subject)
	if err != nil {
		return fmt.Errorf("failed to create subject: %w", err)
	}
	return nil
}

// GetSubject loads one subject owned by userID, mapping a missing document
// to ErrNotFound. A subject belonging to another user is indistinguishable
// from a missing one because the lookup never leaves the owner's collection.
func (c *Firestore) GetSubject(ctx context.Context, userID, subjectID string) (*types.Subject, error) {
	doc, err := c.subjects(userID).Doc(subjectID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	var subject types.Subject
	if err := doc.DataTo(&subject); err != nil {
		return nil, fmt.Errorf("failed to decode subject: %w", err)
	}
	return &subject, nil
}

// ListSubjects returns all subjects for a user, optionally narrowed to a
// year and/or semester. Results carry no guaranteed order; callers sort for
// their own presentation needs.
func (c *Firestore) ListSubjects(ctx context.Context, userID string, filter types.SubjectFilter) ([]types.Subject, error) {
	query := c.subjects(userID).Query
	if filter.Year > 0 {
		query = query.Where("year", "==", filter.Year)
	}
	if filter.Semester > 0 {
		query = query.Where("semester", "==", filter.Semester)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var subjects []types.Subject
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get next subject: %w", err)
		}

		var subject types.Subject
		if err := doc.DataTo(&subject); err != nil {
			continue
		}
		subjects = append(subjects, subject)
	}

	return subjects, nil
}

// UpdateSubject overwrites a subject document with its updated fields.
func (c *Firestore) UpdateSubject(ctx context.Context, subject *types.Subject) error {
	_, err := c.subjects(subject.UserID).Doc(subject.ID).Set(ctx, subject)
	if err != nil {
		return fmt.Errorf("failed to update subject: %w", err)
	}
	return nil
}

// DeleteSubject removes one subject owned by userID. Deleting a subject that
// does not exist (or belongs to someone else) reports ErrNotFound.
func (c *Firestore) DeleteSubject(ctx context.Context, userID, subjectID string) error {
	ref := c.subjects(userID).Doc(subjectID)

	if _, err := ref.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to check subject: %w", err)
	}

	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}
	return nil
}
