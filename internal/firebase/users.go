package firebase

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/PramodHashantha/GPA-Calculator/internal/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const usersCollection = "users"

// CreateUser stores a new account profile. The email must already be
// normalized to lowercase; uniqueness is checked with a query before the
// write, which is sufficient for this single-writer registration flow.
func (c *Firestore) CreateUser(ctx context.Context, user *types.User) error {
	existing, err := c.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("user with email %s already exists", user.Email)
	}

	_, err = c.Collection(usersCollection).Doc(user.ID).Set(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail looks an account up by its normalized email. Returns
// (nil, nil) when no account matches.
func (c *Firestore) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	iter := c.Collection(usersCollection).Where("email", "==", normalized).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	var user types.User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &user, nil
}

// GetUser loads a profile by ID, mapping a missing document to ErrNotFound.
func (c *Firestore) GetUser(ctx context.Context, userID string) (*types.User, error) {
	doc, err := c.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var user types.User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &user, nil
}

// UserExists reports whether an account document is present.
func (c *Firestore) UserExists(ctx context.Context, userID string) (bool, error) {
	_, err := c.GetUser(ctx, userID)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdateDegreeInfo applies the validated degree fields. Nil pointers leave a
// field untouched; the caller guarantees both values passed validation so the
// update is never partially applied.
func (c *Firestore) UpdateDegreeInfo(ctx context.Context, userID string, totalCredits *int, degreeName *string) (*types.User, error) {
	var updates []firestore.Update
	if totalCredits != nil {
		updates = append(updates, firestore.Update{Path: "degree_total_credits", Value: *totalCredits})
	}
	if degreeName != nil {
		updates = append(updates, firestore.Update{Path: "degree_name", Value: *degreeName})
	}

	if len(updates) > 0 {
		if _, err := c.Collection(usersCollection).Doc(userID).Update(ctx, updates); err != nil {
			if status.Code(err) == codes.NotFound {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to update degree info: %w", err)
		}
	}

	return c.GetUser(ctx, userID)
}

// UpdateCreditCategories replaces the four credit buckets in one write.
func (c *Firestore) UpdateCreditCategories(ctx context.Context, userID string, categories types.CreditCategories) error {
	_, err := c.Collection(usersCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: "credit_categories", Value: categories},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update credit categories: %w", err)
	}
	return nil
}
