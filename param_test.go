package mvc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/mvc"
)

func TestValidateParams(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		params  []mvc.Param
		wantErr error
	}{
		"no params": {},
		"request and response": {
			params: []mvc.Param{mvc.RequestParam(), mvc.ResponseParam()},
		},
		"values and handles": {
			params: []mvc.Param{mvc.NamedParam("a"), mvc.RequestParam(), mvc.BoundParam("b", "bee")},
		},
		"two request params": {
			params:  []mvc.Param{mvc.RequestParam(), mvc.RequestParam()},
			wantErr: mvc.ErrInvalidParam,
		},
		"two response params": {
			params:  []mvc.Param{mvc.ResponseParam(), mvc.NamedParam("x"), mvc.ResponseParam()},
			wantErr: mvc.ErrInvalidParam,
		},
		"value without name": {
			params:  []mvc.Param{{Kind: mvc.KindValue}},
			wantErr: mvc.ErrInvalidParam,
		},
		"unknown kind": {
			params:  []mvc.Param{{Name: "x"}},
			wantErr: mvc.ErrInvalidParam,
		},
		"binding on request param": {
			params:  []mvc.Param{{Kind: mvc.KindRequest, Binding: "req"}},
			wantErr: mvc.ErrInvalidParam,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := mvc.ValidateParams(tc.params...)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParamKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "request", mvc.KindRequest.String())
	assert.Equal(t, "response", mvc.KindResponse.String())
	assert.Equal(t, "value", mvc.KindValue.String())
	assert.Equal(t, "ParamKind(9)", mvc.ParamKind(9).String())
}
