package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ExportToken represents a presigned export-download token
type ExportToken struct {
	DatasetID string
	SchemaID  string
	TokenID   string
	ExpiresAt time.Time
}

// ExportLinkService generates and validates presigned URLs for downloading
// transformed datasets without an API key.
type ExportLinkService struct {
	secretKey []byte
	redis     *redis.Client
}

// NewExportLinkService creates a new export link service
func NewExportLinkService(secretKey []byte, redis *redis.Client) *ExportLinkService {
	return &ExportLinkService{
		secretKey: secretKey,
		redis:     redis,
	}
}

// GeneratePresignedToken generates a single-use export token
func (s *ExportLinkService) GeneratePresignedToken(
	datasetID, schemaID string,
	ttl time.Duration,
) (string, error) {
	tokenID := uuid.New().String()
	expiresAt := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"dataset_id": datasetID,
		"schema_id":  schemaID,
		"jti":        tokenID,
		"exp":        expiresAt.Unix(),
		"iat":        time.Now().Unix(),
	}

	// Sign with HMAC
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a presigned export token
func (s *ExportLinkService) ValidateToken(ctx context.Context, tokenString string) (*ExportToken, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	datasetID, ok := (*claims)["dataset_id"].(string)
	if !ok {
		return nil, errors.New("missing or invalid dataset_id claim")
	}

	schemaID, ok := (*claims)["schema_id"].(string)
	if !ok {
		return nil, errors.New("missing or invalid schema_id claim")
	}

	tokenID, ok := (*claims)["jti"].(string)
	if !ok {
		return nil, errors.New("missing or invalid jti claim")
	}

	expFloat, ok := (*claims)["exp"].(float64)
	if !ok {
		return nil, errors.New("missing or invalid exp claim")
	}
	expiresAt := time.Unix(int64(expFloat), 0)

	if time.Now().After(expiresAt) {
		return nil, errors.New("token expired")
	}

	// Single-use enforcement
	isUsed, err := s.IsTokenUsed(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token usage: %w", err)
	}
	if isUsed {
		return nil, errors.New("token already used")
	}

	return &ExportToken{
		DatasetID: datasetID,
		SchemaID:  schemaID,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

// MarkTokenAsUsed marks a token as used (single-use enforcement)
func (s *ExportLinkService) MarkTokenAsUsed(ctx context.Context, tokenID string) error {
	ttl := 15 * time.Minute

	err := s.redis.Set(ctx, "used_token:"+tokenID, "1", ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to mark token as used: %w", err)
	}

	return nil
}

// IsTokenUsed checks if a token has already been used
func (s *ExportLinkService) IsTokenUsed(ctx context.Context, tokenID string) (bool, error) {
	result, err := s.redis.Get(ctx, "used_token:"+tokenID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token usage: %w", err)
	}
	return result == "1", nil
}
