package services

import (
	"context"
	"strings"
	"time"

	"filehive/database"
	"filehive/models"
	"filehive/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuthService struct {
	userCollection *mongo.Collection
	sessions       *SessionService
}

func NewAuthService() *AuthService {
	return &AuthService{
		userCollection: database.GetCollection(database.UsersCollection),
		sessions:       NewSessionService(utils.TokenTTL()),
	}
}

// Register creates a new account and opens a session for it
func (as *AuthService) Register(req *models.SignupRequest) (*models.AuthResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(req.Email))

	count, err := as.userCollection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.ConflictErrorf("an account with this email already exists")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := as.userCollection.InsertOne(ctx, user); err != nil {
		// Unique email index arbitrates concurrent signups
		if utils.IsDuplicateKey(err) {
			return nil, utils.ConflictErrorf("an account with this email already exists")
		}
		return nil, err
	}

	return as.openSession(ctx, user)
}

// Login verifies credentials and opens a session
func (as *AuthService) Login(req *models.LoginRequest) (*models.AuthResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := as.userCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.ErrUnauthorized
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return nil, utils.ErrUnauthorized
	}

	return as.openSession(ctx, &user)
}

// Logout removes the user's session so the presented token stops validating
func (as *AuthService) Logout(userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return as.sessions.Delete(ctx, userID)
}

// MarkVerified flags the account with the given email as verified
func (as *AuthService) MarkVerified(ctx context.Context, email string) error {
	_, err := as.userCollection.UpdateOne(ctx,
		bson.M{"email": strings.ToLower(strings.TrimSpace(email))},
		bson.M{"$set": bson.M{"is_verified": true, "updated_at": time.Now()}},
	)
	return err
}

func (as *AuthService) openSession(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	if err := as.sessions.Store(ctx, user.ID, token); err != nil {
		return nil, err
	}

	return &models.AuthResponse{User: user, Token: token}, nil
}
