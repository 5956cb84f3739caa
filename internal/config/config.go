package config

import (
	"crypto/rsa"
	"encoding/base64"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/nguyensartoro/property-management-system-backend/internal/constants"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

// Config holds all application configuration, including secrets and flags.
type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string
	DBUrl            string
	TokenExpiry      time.Duration

	TwilioAccountSID string
	TwilioAuthToken  string
	SendGridAPIKey   string

	RSAPrivateKey *rsa.PrivateKey
	RSAPublicKey  *rsa.PublicKey

	// RolePermissionsJSON overrides the built-in role grant table when
	// set. Empty means defaults.
	RolePermissionsJSON string

	// Static flags fetched once from LaunchDarkly
	LDFlag_SendgridFromEmail            string
	LDFlag_TwilioFromPhone              string
	LDFlag_SendgridSandboxMode          bool
	LDFlag_ReleaseRoomAnyActiveContract bool
	LDFlag_SeedDbWithTestData           bool
	LDFlag_CORSHighSecurity             bool
	LDFlag_ShortTokenTTL                bool
}

const LDConnectionTimeout = 5 * time.Second

func mustEnv(name string) string {
	v := os.Getenv(name)
	if v == "" {
		utils.Logger.Fatalf("%s env var is missing", name)
	}
	return v
}

// LoadConfig reads environment variables, parses the RSA key pair, fetches
// static flags from LaunchDarkly, and returns a *Config.
func LoadConfig() *Config {
	// A local .env is convenience for development; deployed environments
	// inject real env vars.
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file found; relying on process environment")
	}

	utils.Logger.Info("Loading config for app: ", constants.AppName)

	appPort := mustEnv("APP_PORT")
	appUrl := mustEnv("APP_URL")
	dbUrl := mustEnv("DB_URL")

	twilioAccountSID := mustEnv("TWILIO_ACCOUNT_SID")
	twilioAuthToken := mustEnv("TWILIO_AUTH_TOKEN")
	sendGridAPIKey := mustEnv("SENDGRID_API_KEY")
	ldSDKKey := mustEnv("LD_SDK_KEY")

	utils.Logger.Debugf("App can be accessed at: %s", appUrl)

	//----------------------------------------------------------------------
	// Parse the RSA key pair used for signing and verifying tokens.
	//----------------------------------------------------------------------
	privateKeyPEM, err := base64.StdEncoding.DecodeString(mustEnv("RSA_PRIVATE_KEY_BASE64"))
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to decode base64 private key")
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA private key")
	}

	publicKeyPEM, err := base64.StdEncoding.DecodeString(mustEnv("RSA_PUBLIC_KEY_BASE64"))
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to decode base64 public key")
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	rolePermissionsJSON := os.Getenv("ROLE_PERMISSIONS_JSON")

	//----------------------------------------------------------------------
	// Initialize the LaunchDarkly client and fetch static flags.
	//----------------------------------------------------------------------
	ldClient, err := ld.MakeClient(ldSDKKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	if !ldClient.Initialized() {
		ldClient.Close()
		utils.Logger.Fatal("LaunchDarkly client failed to initialize")
	}
	defer ldClient.Close()

	context := ldcontext.NewWithKind("service", constants.AppName)

	sendgridFromEmailFlag, err := ldClient.StringVariation("sendgrid_from_email", context, "")
	if err != nil {
		ldClient.Close()
		utils.Logger.WithError(err).Fatal("Error retrieving sendgrid_from_email flag")
	}
	if sendgridFromEmailFlag == "" {
		utils.Logger.Fatal("sendgrid_from_email flag is empty")
	}

	twilioFromPhoneFlag, err := ldClient.StringVariation("twilio_from_phone", context, "")
	if err != nil {
		ldClient.Close()
		utils.Logger.WithError(err).Fatal("Error retrieving twilio_from_phone flag")
	}
	if twilioFromPhoneFlag == "" {
		utils.Logger.Fatal("twilio_from_phone flag is empty")
	}

	sendgridSandboxModeFlag, err := ldClient.BoolVariation("sendgrid_sandbox_mode", context, false)
	if err != nil {
		ldClient.Close()
		utils.Logger.WithError(err).Fatal("Error retrieving sendgrid_sandbox_mode flag")
	}
	utils.Logger.Debugf("sendgrid_sandbox_mode flag: %t", sendgridSandboxModeFlag)

	releaseRoomAnyActiveFlag, err := ldClient.BoolVariation("release_room_any_active_contract", context, false)
	if err != nil {
		ldClient.Close()
		utils.Logger.WithError(err).Fatal("Error retrieving release_room_any_active_contract flag")
	}
	utils.Logger.Debugf("release_room_any_active_contract flag: %t", releaseRoomAnyActiveFlag)

	seedDbWithTestDataFlag, err := ldClient.BoolVariation("seed_db_with_test_data", context, false)
	if err != nil {
		ldClient.Close()
		utils.Logger.WithError(err).Fatal("Error retrieving seed_db_with_test_data flag")
	}
	utils.Logger.Debugf("seed_db_with_test_data flag: %t", seedDbWithTestDataFlag)

	corsHighSecurityFlag, err := ldClient.BoolVariation("cors_high_security", context, false)
	if err != nil {
		ldClient.Close()
		utils.Logger.WithError(err).Fatal("Error retrieving cors_high_security flag")
	}
	utils.Logger.Debugf("cors_high_security flag: %t", corsHighSecurityFlag)

	shortTokenTTLFlag, err := ldClient.BoolVariation("short_token_ttl", context, false)
	if err != nil {
		ldClient.Close()
		utils.Logger.WithError(err).Fatal("Error retrieving short_token_ttl flag")
	}
	utils.Logger.Debugf("short_token_ttl flag: %t", shortTokenTTLFlag)

	tokenExpiry := constants.DefaultTokenExpiry
	if shortTokenTTLFlag {
		tokenExpiry = constants.TestShortTokenExpiry
	}

	return &Config{
		OrganizationName:    constants.OrganizationName,
		AppName:             constants.AppName,
		AppPort:             appPort,
		AppUrl:              appUrl,
		DBUrl:               dbUrl,
		TokenExpiry:         tokenExpiry,
		TwilioAccountSID:    twilioAccountSID,
		TwilioAuthToken:     twilioAuthToken,
		SendGridAPIKey:      sendGridAPIKey,
		RSAPrivateKey:       privateKey,
		RSAPublicKey:        publicKey,
		RolePermissionsJSON: rolePermissionsJSON,

		LDFlag_SendgridFromEmail:            sendgridFromEmailFlag,
		LDFlag_TwilioFromPhone:              twilioFromPhoneFlag,
		LDFlag_SendgridSandboxMode:          sendgridSandboxModeFlag,
		LDFlag_ReleaseRoomAnyActiveContract: releaseRoomAnyActiveFlag,
		LDFlag_SeedDbWithTestData:           seedDbWithTestDataFlag,
		LDFlag_CORSHighSecurity:             corsHighSecurityFlag,
		LDFlag_ShortTokenTTL:                shortTokenTTLFlag,
	}
}
