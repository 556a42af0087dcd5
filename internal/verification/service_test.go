package verification_test

import (
	"regexp"
	"testing"
	"time"

	"messenger/backend/internal/apperr"
	"messenger/backend/internal/config"
	"messenger/backend/internal/storage/storagetest"
	"messenger/backend/internal/verification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIssue_RequiresPhone(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := verification.NewService(storageMock)

	_, err := svc.Issue("   ")

	assert.ErrorIs(t, err, apperr.ErrValidation)
	storageMock.AssertNotCalled(t, "IssueCode", mock.Anything, mock.Anything, mock.Anything)
}

// TestIssue_GeneratesSixDigitCode verifies the code format and the 5-minute
// expiry handed to the store.
func TestIssue_GeneratesSixDigitCode(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := verification.NewService(storageMock)

	var storedCode string
	var storedExpiry time.Time
	storageMock.On("IssueCode", "+15551234", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			storedCode = args.String(1)
			storedExpiry = args.Get(2).(time.Time)
		}).
		Return(nil).Once()

	code, err := svc.Issue(" +15551234 ")

	require.NoError(t, err)
	assert.Equal(t, storedCode, code)
	assert.Regexp(t, regexp.MustCompile(`^[1-9]\d{5}$`), code)
	assert.WithinDuration(t, time.Now().Add(config.CodeTTL), storedExpiry, 2*time.Second)
}

func TestVerify_Validation(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := verification.NewService(storageMock)

	_, err := svc.Verify("", "123456")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Verify("+15551234", "  ")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	storageMock.AssertNotCalled(t, "ConsumeCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerify_DelegatesToStore(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := verification.NewService(storageMock)

	storageMock.On("ConsumeCode", "+15551234", "123456", mock.AnythingOfType("time.Time")).
		Return(true, nil).Once()

	ok, err := svc.Verify(" +15551234 ", " 123456 ")

	require.NoError(t, err)
	assert.True(t, ok)
	storageMock.AssertExpectations(t)
}
