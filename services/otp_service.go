package services

import (
	"context"
	"time"

	"filehive/database"
	"filehive/models"
	"filehive/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type OTPService struct {
	otpCollection *mongo.Collection
	mailer        *EmailService
	auth          *AuthService
	ttl           time.Duration
}

func NewOTPService(mailer *EmailService, ttl time.Duration) *OTPService {
	return &OTPService{
		otpCollection: database.GetCollection(database.OTPsCollection),
		mailer:        mailer,
		auth:          NewAuthService(),
		ttl:           ttl,
	}
}

// Send issues a fresh verification code for the email, replacing any earlier
// ones, and mails it.
func (s *OTPService) Send(req *models.OTPSendRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	code, err := utils.GenerateOTP()
	if err != nil {
		return err
	}

	if _, err := s.otpCollection.DeleteMany(ctx, bson.M{"email": req.Email}); err != nil {
		return err
	}

	otp := &models.OTP{
		ID:        primitive.NewObjectID(),
		Email:     req.Email,
		Code:      code,
		ExpiresAt: time.Now().Add(s.ttl),
		CreatedAt: time.Now(),
	}

	if _, err := s.otpCollection.InsertOne(ctx, otp); err != nil {
		return err
	}

	return s.mailer.SendOTP(req.Email, req.Name, code, s.ttl)
}

// Verify checks the submitted code, consumes it and marks the account verified
func (s *OTPService) Verify(req *models.OTPVerifyRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var record models.OTP
	err := s.otpCollection.FindOne(ctx, bson.M{
		"email": req.Email,
		"code":  req.OTP,
	}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return utils.ValidationErrorf("invalid OTP")
		}
		return err
	}

	if record.ExpiresAt.Before(time.Now()) {
		return utils.ValidationErrorf("OTP expired")
	}

	if _, err := s.otpCollection.DeleteMany(ctx, bson.M{"email": req.Email}); err != nil {
		return err
	}

	return s.auth.MarkVerified(ctx, req.Email)
}
