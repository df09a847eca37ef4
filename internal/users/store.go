// Package users persists accounts as User nodes in the graph database,
// keyed by email.
package users

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"dottie-backend/pkg/apperrors"
	"dottie-backend/pkg/logger"
)

// User is a registered account
type User struct {
	Email          string `json:"email"`
	HashedPassword string `json:"-"`
}

// Store handles User node operations
type Store struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewStore creates a user store over the shared Neo4j driver
func NewStore(driver neo4j.DriverWithContext) *Store {
	return &Store{
		driver: driver,
		logger: logger.Get(),
	}
}

// Create stores a new user. The email must not already be registered.
func (s *Store) Create(ctx context.Context, user User) error {
	existing, err := s.GetByEmail(ctx, user.Email)
	if err != nil && !apperrors.Is(err, apperrors.KindNotFound) {
		return err
	}
	if existing != nil {
		return apperrors.Validation("email is already registered", nil)
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		CREATE (u:User {email: $email, hashed_password: $hashedPassword})
	`

	_, err = session.Run(ctx, query, map[string]any{
		"email":          user.Email,
		"hashedPassword": user.HashedPassword,
	})
	if err != nil {
		return apperrors.Internal("failed to create user", err)
	}

	s.logger.Info("User registered", zap.String("email", user.Email))
	return nil
}

// GetByEmail fetches a user by email, or a not-found error
func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {email: $email})
		RETURN u.email AS email, u.hashed_password AS hashed_password
	`

	result, err := session.Run(ctx, query, map[string]any{"email": email})
	if err != nil {
		return nil, apperrors.Internal("failed to query user", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, apperrors.Internal("failed to read user record", err)
		}
		return nil, apperrors.NotFound(fmt.Sprintf("no user registered as %s", email))
	}

	record := result.Record()
	user := &User{}
	if val, ok := record.Get("email"); ok {
		user.Email, _ = val.(string)
	}
	if val, ok := record.Get("hashed_password"); ok {
		user.HashedPassword, _ = val.(string)
	}

	return user, nil
}

// UpdatePassword replaces the stored password hash for an email
func (s *Store) UpdatePassword(ctx context.Context, email, hashedPassword string) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {email: $email})
		SET u.hashed_password = $hashedPassword
		RETURN u.email AS email
	`

	result, err := session.Run(ctx, query, map[string]any{
		"email":          email,
		"hashedPassword": hashedPassword,
	})
	if err != nil {
		return apperrors.Internal("failed to update user", err)
	}
	if _, err := result.Single(ctx); err != nil {
		return apperrors.NotFound(fmt.Sprintf("no user registered as %s", email))
	}

	s.logger.Info("User password updated", zap.String("email", email))
	return nil
}

// Delete removes a user node and any attached relationships
func (s *Store) Delete(ctx context.Context, email string) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {email: $email})
		DETACH DELETE u
	`

	if _, err := session.Run(ctx, query, map[string]any{"email": email}); err != nil {
		return apperrors.Internal("failed to delete user", err)
	}

	s.logger.Info("User deleted", zap.String("email", email))
	return nil
}
