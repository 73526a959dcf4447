package registry_test

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/mocks"
	"github.com/feral-file/ff-minter/internal/registry"
)

func unmarshalJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func TestWhitelistLoader_Load(t *testing.T) {
	tests := []struct {
		name        string
		setupMocks  func(*mocks.MockFileSystem, *mocks.MockJSON)
		expectedErr string // Error message to assert, empty means no error expected
		expected    []common.Address
	}{
		{
			name: "successful load with valid JSON",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("whitelist.json").
					Return([]byte(`[
					"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
					"0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc"
				]`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(unmarshalJSON)
			},
			expected: []common.Address{
				common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"),
				common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"),
			},
		},
		{
			name: "duplicates keep the first occurrence",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("whitelist.json").
					Return([]byte(`[
					"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC",
					"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
					"0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc"
				]`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(unmarshalJSON)
			},
			expected: []common.Address{
				common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"),
				common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"),
			},
		},
		{
			name: "empty whitelist",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("whitelist.json").
					Return([]byte(`[]`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(unmarshalJSON)
			},
			expected: []common.Address{},
		},
		{
			name: "file read error",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("whitelist.json").
					Return(nil, assert.AnError)
			},
			expectedErr: "failed to read whitelist file",
		},
		{
			name: "JSON parse error",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				whitelistJSON := []byte(`invalid json`)
				mockFS.
					EXPECT().
					ReadFile("whitelist.json").
					Return(whitelistJSON, nil)
				mockJSON.
					EXPECT().
					Unmarshal(whitelistJSON, gomock.Any()).
					Return(assert.AnError)
			},
			expectedErr: "failed to parse whitelist JSON",
		},
		{
			name: "invalid address",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("whitelist.json").
					Return([]byte(`["0x70997970C51812dc3A010C7d01b50e0d17dc79C8", "KT1ABC"]`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(unmarshalJSON)
			},
			expectedErr: "invalid whitelist entry 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFS := mocks.NewMockFileSystem(ctrl)
			mockJSON := mocks.NewMockJSON(ctrl)

			if tt.setupMocks != nil {
				tt.setupMocks(mockFS, mockJSON)
			}

			loader := registry.NewWhitelistLoader(mockFS, mockJSON)
			addrs, err := loader.Load("whitelist.json")

			if tt.expectedErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				assert.Nil(t, addrs)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, addrs)
			}
		})
	}
}

func TestParseAddresses_ZeroAddress(t *testing.T) {
	_, err := registry.ParseAddresses([]string{domain.ETHEREUM_ZERO_ADDRESS})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrZeroAddress)
}
