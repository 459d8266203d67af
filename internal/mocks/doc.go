// Package mocks provides centralized mock implementations for testing.
//
// Two styles are used. Function-field mocks expose one Fn field per method
// and fall back to a canned value when the field is nil:
//
//	svc := &mocks.MockFavoriteService{
//	    GetFn: func(ctx context.Context, id uuid.UUID) (*domain.Favorite, error) {
//	        return nil, service.ErrFavoriteNotFound
//	    },
//	}
//
// Testify mocks embed mock.Mock for tests that want call expectations:
//
//	st := new(mocks.TestifyMockFavoriteStore)
//	st.On("Create", mock.Anything, mock.Anything).Return(nil)
package mocks
