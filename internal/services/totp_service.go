package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/models"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const totpIssuer = "BotPanel"

// TOTPSetupResponse carries the provisioning data for an authenticator
// app: the raw secret plus a QR code as an inline PNG.
type TOTPSetupResponse struct {
	Secret      string `json:"secret"`
	QRCode      string `json:"qr_code"`
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}

type TOTPAccountRepo interface {
	Get(ctx context.Context, id int) (*models.Account, error)
	GetTOTPSecret(ctx context.Context, id int) (string, error)
	SetTOTPSecret(ctx context.Context, id int, secret string) error
	EnableTOTP(ctx context.Context, id int) error
	DisableTOTP(ctx context.Context, id int) error
}

type TOTPService struct {
	Repo TOTPAccountRepo
}

func NewTOTPService(repo TOTPAccountRepo) *TOTPService {
	return &TOTPService{Repo: repo}
}

// GenerateSetup creates a new TOTP secret for an account. The secret is
// stored but 2FA stays off until VerifyAndEnable succeeds.
func (s *TOTPService) GenerateSetup(ctx context.Context, account *models.Account) (*TOTPSetupResponse, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: account.Usuario,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Repo.SetTOTPSecret(ctx, account.ID, key.Secret()); err != nil {
		return nil, err
	}

	qrImage, err := key.Image(200, 200)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, qrImage); err != nil {
		return nil, err
	}

	return &TOTPSetupResponse{
		Secret:      key.Secret(),
		QRCode:      "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Issuer:      totpIssuer,
		AccountName: account.Usuario,
	}, nil
}

// VerifyAndEnable checks a code against the stored secret and turns
// 2FA on.
func (s *TOTPService) VerifyAndEnable(ctx context.Context, accountID int, code string) error {
	secret, err := s.Repo.GetTOTPSecret(ctx, accountID)
	if err != nil {
		return err
	}
	if secret == "" {
		return apierror.Validation("No hay configuracion 2FA pendiente")
	}
	if !totp.Validate(code, secret) {
		return apierror.Unauthenticated("Codigo 2FA invalido")
	}
	return s.Repo.EnableTOTP(ctx, accountID)
}

// VerifyCode checks a login-time code for an account with 2FA enabled.
func (s *TOTPService) VerifyCode(ctx context.Context, accountID int, code string) error {
	secret, err := s.Repo.GetTOTPSecret(ctx, accountID)
	if err != nil {
		return err
	}
	if secret == "" || !totp.Validate(code, secret) {
		return apierror.Unauthenticated("Codigo 2FA invalido")
	}
	return nil
}

// Disable turns 2FA off after re-verifying a current code.
func (s *TOTPService) Disable(ctx context.Context, accountID int, code string) error {
	if err := s.VerifyCode(ctx, accountID, code); err != nil {
		return err
	}
	return s.Repo.DisableTOTP(ctx, accountID)
}
