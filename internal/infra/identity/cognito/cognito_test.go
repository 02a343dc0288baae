package cognito

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/internal/domain/service"
	"quill/internal/errors"
)

// fakeAPI lets each test script the Cognito responses.
type fakeAPI struct {
	signUpErr      error
	confirmErr     error
	initiateAuth   *cip.InitiateAuthOutput
	initiateErr    error
	getUser        *cip.GetUserOutput
	getUserErr     error
	lastSignUp     *cip.SignUpInput
	lastConfirm    *cip.ConfirmSignUpInput
	lastInitiate   *cip.InitiateAuthInput
	lastGetUserReq *cip.GetUserInput
}

func (f *fakeAPI) SignUp(_ context.Context, params *cip.SignUpInput, _ ...func(*cip.Options)) (*cip.SignUpOutput, error) {
	f.lastSignUp = params
	return &cip.SignUpOutput{}, f.signUpErr
}

func (f *fakeAPI) ConfirmSignUp(_ context.Context, params *cip.ConfirmSignUpInput, _ ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error) {
	f.lastConfirm = params
	return &cip.ConfirmSignUpOutput{}, f.confirmErr
}

func (f *fakeAPI) InitiateAuth(_ context.Context, params *cip.InitiateAuthInput, _ ...func(*cip.Options)) (*cip.InitiateAuthOutput, error) {
	f.lastInitiate = params
	return f.initiateAuth, f.initiateErr
}

func (f *fakeAPI) GetUser(_ context.Context, params *cip.GetUserInput, _ ...func(*cip.Options)) (*cip.GetUserOutput, error) {
	f.lastGetUserReq = params
	return f.getUser, f.getUserErr
}

func TestSignUp_SendsStandardAttributes(t *testing.T) {
	fake := &fakeAPI{}
	provider := newWithClient(fake, "client-id")

	err := provider.SignUp(context.Background(), "a@x.com", "pw1", service.SignUpAttributes{
		Email:     "a@x.com",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	require.NoError(t, err)

	require.NotNil(t, fake.lastSignUp)
	assert.Equal(t, "client-id", aws.ToString(fake.lastSignUp.ClientId))
	assert.Equal(t, "a@x.com", aws.ToString(fake.lastSignUp.Username))
	assert.Len(t, fake.lastSignUp.UserAttributes, 3)
}

func TestSignUp_TranslatesUsernameExists(t *testing.T) {
	fake := &fakeAPI{signUpErr: &types.UsernameExistsException{}}
	provider := newWithClient(fake, "client-id")

	err := provider.SignUp(context.Background(), "a@x.com", "pw1", service.SignUpAttributes{Email: "a@x.com"})
	assert.True(t, errors.Is(err, service.ErrIdentityExists))
}

func TestConfirm_TranslatesCodeErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "code mismatch", err: &types.CodeMismatchException{}, want: service.ErrCodeMismatch},
		{name: "expired code", err: &types.ExpiredCodeException{}, want: service.ErrCodeMismatch},
		{name: "already confirmed", err: &types.NotAuthorizedException{}, want: service.ErrAlreadyConfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newWithClient(&fakeAPI{confirmErr: tt.err}, "client-id")

			err := provider.Confirm(context.Background(), "a@x.com", "123456")
			assert.True(t, errors.Is(err, tt.want))
		})
	}
}

func TestAuthenticate_ReturnsTokens(t *testing.T) {
	fake := &fakeAPI{
		initiateAuth: &cip.InitiateAuthOutput{
			AuthenticationResult: &types.AuthenticationResultType{
				AccessToken:  aws.String("access"),
				IdToken:      aws.String("id"),
				RefreshToken: aws.String("refresh"),
			},
		},
	}
	provider := newWithClient(fake, "client-id")

	tokens, err := provider.Authenticate(context.Background(), "a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "access", tokens.AccessToken)
	assert.Equal(t, "id", tokens.IDToken)
	assert.Equal(t, "refresh", tokens.RefreshToken)

	require.NotNil(t, fake.lastInitiate)
	assert.Equal(t, types.AuthFlowTypeUserPasswordAuth, fake.lastInitiate.AuthFlow)
	assert.Equal(t, "a@x.com", fake.lastInitiate.AuthParameters["USERNAME"])
}

func TestAuthenticate_TranslatesNotAuthorized(t *testing.T) {
	provider := newWithClient(&fakeAPI{initiateErr: &types.NotAuthorizedException{}}, "client-id")

	_, err := provider.Authenticate(context.Background(), "a@x.com", "wrong")
	assert.True(t, errors.Is(err, service.ErrNotAuthorized))
}

func TestAuthenticate_RejectsMissingResult(t *testing.T) {
	provider := newWithClient(&fakeAPI{initiateAuth: &cip.InitiateAuthOutput{}}, "client-id")

	_, err := provider.Authenticate(context.Background(), "a@x.com", "pw1")
	assert.Error(t, err)
}

func TestProfile_ParsesAttributes(t *testing.T) {
	fake := &fakeAPI{
		getUser: &cip.GetUserOutput{
			UserAttributes: []types.AttributeType{
				{Name: aws.String("sub"), Value: aws.String("subject-123")},
				{Name: aws.String("email"), Value: aws.String("a@x.com")},
				{Name: aws.String("given_name"), Value: aws.String("Alice")},
				{Name: aws.String("family_name"), Value: aws.String("Smith")},
			},
		},
	}
	provider := newWithClient(fake, "client-id")

	profile, err := provider.Profile(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "subject-123", profile.SubjectID)
	assert.Equal(t, "a@x.com", profile.Email)
	assert.Equal(t, "Alice", profile.FirstName)
	assert.Equal(t, "Smith", profile.LastName)
}

func TestProfile_RequiresSubject(t *testing.T) {
	fake := &fakeAPI{getUser: &cip.GetUserOutput{}}
	provider := newWithClient(fake, "client-id")

	_, err := provider.Profile(context.Background(), "token")
	assert.Error(t, err)
}
