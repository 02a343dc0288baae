// Package cognito implements the IdentityProvider interface on top of
// AWS Cognito user pools. It owns no local state; every operation is a
// pass-through with typed failure translation.
package cognito

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"quill/config"
	"quill/internal/domain/service"
	"quill/internal/errors"
)

// Cognito standard attribute names used by the signup and profile calls.
const (
	attrSub        = "sub"
	attrEmail      = "email"
	attrGivenName  = "given_name"
	attrFamilyName = "family_name"
)

// api is the slice of the Cognito client this adapter uses.
// Narrowing the dependency keeps the adapter testable without the SDK transport.
type api interface {
	SignUp(ctx context.Context, params *cip.SignUpInput, optFns ...func(*cip.Options)) (*cip.SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, params *cip.ConfirmSignUpInput, optFns ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error)
	InitiateAuth(ctx context.Context, params *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	GetUser(ctx context.Context, params *cip.GetUserInput, optFns ...func(*cip.Options)) (*cip.GetUserOutput, error)
}

type identityProvider struct {
	client   api
	clientID string
}

// New builds the Cognito-backed identity provider from configuration.
func New(ctx context.Context, cfg *config.Config) (service.IdentityProvider, error) {
	if cfg.Cognito == nil {
		return nil, errors.New("cognito configuration is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Cognito.Region),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS configuration")
	}

	return &identityProvider{
		client:   cip.NewFromConfig(awsCfg),
		clientID: cfg.Cognito.ClientID,
	}, nil
}

// newWithClient wires an explicit API implementation; used by tests.
func newWithClient(client api, clientID string) service.IdentityProvider {
	return &identityProvider{client: client, clientID: clientID}
}

// SignUp registers a pending identity and triggers out-of-band OTP delivery.
func (p *identityProvider) SignUp(ctx context.Context, email, password string, attrs service.SignUpAttributes) error {
	input := &cip.SignUpInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(email),
		Password: aws.String(password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String(attrEmail), Value: aws.String(attrs.Email)},
			{Name: aws.String(attrGivenName), Value: aws.String(attrs.FirstName)},
			{Name: aws.String(attrFamilyName), Value: aws.String(attrs.LastName)},
		},
	}

	if _, err := p.client.SignUp(ctx, input); err != nil {
		var exists *types.UsernameExistsException
		if errors.As(err, &exists) {
			return service.ErrIdentityExists
		}

		return errors.Wrap(err, "cognito sign up failed")
	}

	return nil
}

// Confirm marks a pending identity verified using the delivered OTP.
func (p *identityProvider) Confirm(ctx context.Context, email, code string) error {
	input := &cip.ConfirmSignUpInput{
		ClientId:         aws.String(p.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
	}

	if _, err := p.client.ConfirmSignUp(ctx, input); err != nil {
		var mismatch *types.CodeMismatchException
		var expired *types.ExpiredCodeException
		if errors.As(err, &mismatch) || errors.As(err, &expired) {
			return service.ErrCodeMismatch
		}

		// Cognito rejects confirming an identity that is already CONFIRMED
		// with NotAuthorizedException. Surfacing it as a distinct error lets
		// repeat signins stay idempotent.
		var notAuthorized *types.NotAuthorizedException
		if errors.As(err, &notAuthorized) {
			return service.ErrAlreadyConfirmed
		}

		return errors.Wrap(err, "cognito confirm sign up failed")
	}

	return nil
}

// Authenticate validates credentials and returns the provider's tokens.
func (p *identityProvider) Authenticate(ctx context.Context, email, password string) (*service.AuthTokens, error) {
	input := &cip.InitiateAuthInput{
		ClientId: aws.String(p.clientID),
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	}

	out, err := p.client.InitiateAuth(ctx, input)
	if err != nil {
		var notAuthorized *types.NotAuthorizedException
		var notFound *types.UserNotFoundException
		if errors.As(err, &notAuthorized) || errors.As(err, &notFound) {
			return nil, service.ErrNotAuthorized
		}

		return nil, errors.Wrap(err, "cognito initiate auth failed")
	}

	if out.AuthenticationResult == nil {
		return nil, errors.New("cognito returned no authentication result")
	}

	return &service.AuthTokens{
		AccessToken:  aws.ToString(out.AuthenticationResult.AccessToken),
		IDToken:      aws.ToString(out.AuthenticationResult.IdToken),
		RefreshToken: aws.ToString(out.AuthenticationResult.RefreshToken),
	}, nil
}

// Profile returns the stored attributes for the identity behind an access token.
func (p *identityProvider) Profile(ctx context.Context, accessToken string) (*service.IdentityProfile, error) {
	out, err := p.client.GetUser(ctx, &cip.GetUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		var notAuthorized *types.NotAuthorizedException
		if errors.As(err, &notAuthorized) {
			return nil, service.ErrNotAuthorized
		}

		return nil, errors.Wrap(err, "cognito get user failed")
	}

	profile := &service.IdentityProfile{}
	for _, attr := range out.UserAttributes {
		switch aws.ToString(attr.Name) {
		case attrSub:
			profile.SubjectID = aws.ToString(attr.Value)
		case attrEmail:
			profile.Email = aws.ToString(attr.Value)
		case attrGivenName:
			profile.FirstName = aws.ToString(attr.Value)
		case attrFamilyName:
			profile.LastName = aws.ToString(attr.Value)
		}
	}

	if profile.SubjectID == "" {
		return nil, errors.New("cognito profile is missing the subject identifier")
	}

	return profile, nil
}
