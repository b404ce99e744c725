package accountdelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/go-fin/ledger-bank/internal/domain"
	"github.com/go-fin/ledger-bank/pkg/errorspkg"
	"github.com/go-fin/ledger-bank/pkg/randompkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func randomAccount() domain.Account {
	return domain.Account{
		ID:         randompkg.Intn(1000) + 1,
		HolderName: randompkg.HolderName(),
		Balance:    randompkg.MoneyAmountBetween(100, 10_000),
		CreatedAt:  time.Now().Truncate(time.Second).UTC(),
	}
}

func setupRouter(t *testing.T, service Service) *gin.Engine {
	t.Helper()

	handler := NewHandler(service)

	router := gin.New()
	router.POST("/accounts", handler.Create)
	router.GET("/accounts/:id", handler.Get)
	router.GET("/accounts", handler.List)
	router.DELETE("/accounts/:id", handler.Delete)

	return router
}

type accountResponse struct {
	Data struct {
		Account domain.Account `json:"account"`
	} `json:"data"`
	Error string `json:"error"`
}

func TestCreate(t *testing.T) {
	account := randomAccount()

	testCases := []struct {
		name           string
		requestBody    gin.H
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
		checkData      func(t *testing.T, got domain.Account)
	}{
		{
			name: "OK",
			requestBody: gin.H{
				"holder_name":     account.HolderName,
				"initial_balance": account.Balance,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(account.HolderName), gomock.Eq(account.Balance)).
					Times(1).
					Return(account, nil)
			},
			wantStatusCode: http.StatusCreated,
			checkData: func(t *testing.T, got domain.Account) {
				compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
				if diff := cmp.Diff(account, got, compareCreatedAt); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "DefaultZeroBalance",
			requestBody: gin.H{
				"holder_name": account.HolderName,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(account.HolderName), gomock.Eq("0")).
					Times(1).
					Return(domain.Account{ID: account.ID, HolderName: account.HolderName, Balance: "0"}, nil)
			},
			wantStatusCode: http.StatusCreated,
			checkData: func(t *testing.T, got domain.Account) {
				if got.Balance != "0" {
					t.Errorf("got.Balance = %v, want 0", got.Balance)
				}
			},
		},
		{
			name:        "MissingHolderName",
			requestBody: gin.H{"initial_balance": "100"},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "HolderName is required",
		},
		{
			name: "NegativeInitialBalance",
			requestBody: gin.H{
				"holder_name":     account.HolderName,
				"initial_balance": "-100",
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(account.HolderName), gomock.Eq("-100")).
					Times(1).
					Return(domain.Account{}, domain.ErrNegativeAmount)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrNegativeAmount.Error(),
		},
		{
			name: "InternalError",
			requestBody: gin.H{
				"holder_name":     account.HolderName,
				"initial_balance": account.Balance,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			router := setupRouter(t, service)

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("json.Marshal(%v) returned error: %v", tc.requestBody, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			if recorder.Code != tc.wantStatusCode {
				t.Errorf("status = %v, want %v; body: %v", recorder.Code, tc.wantStatusCode, recorder.Body)
			}

			var res accountResponse
			if err := json.Unmarshal(recorder.Body.Bytes(), &res); err != nil {
				t.Fatalf("json.Unmarshal response returned error: %v", err)
			}

			if tc.wantError != "" && res.Error != tc.wantError {
				t.Errorf("res.Error = %q, want %q", res.Error, tc.wantError)
			}

			if tc.checkData != nil {
				tc.checkData(t, res.Data.Account)
			}
		})
	}
}

func TestGet(t *testing.T) {
	account := randomAccount()

	testCases := []struct {
		name           string
		url            string
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			url:  "/accounts/1",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Eq(int64(1))).
					Times(1).
					Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "NotFound",
			url:  "/accounts/404",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Eq(int64(404))).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrAccountNotFound.Error(),
		},
		{
			name: "InvalidID",
			url:  "/accounts/0",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "InternalError",
			url:  "/accounts/1",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Eq(int64(1))).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			router := setupRouter(t, service)

			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			if recorder.Code != tc.wantStatusCode {
				t.Errorf("status = %v, want %v; body: %v", recorder.Code, tc.wantStatusCode, recorder.Body)
			}

			var res accountResponse
			if err := json.Unmarshal(recorder.Body.Bytes(), &res); err != nil {
				t.Fatalf("json.Unmarshal response returned error: %v", err)
			}

			if tc.wantError != "" && res.Error != tc.wantError {
				t.Errorf("res.Error = %q, want %q", res.Error, tc.wantError)
			}
		})
	}
}

func TestList(t *testing.T) {
	accounts := []domain.Account{randomAccount(), randomAccount()}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewMockService(ctrl)
	service.EXPECT().List(gomock.Any()).Times(1).Return(accounts, nil)

	router := setupRouter(t, service)

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %v, want %v; body: %v", recorder.Code, http.StatusOK, recorder.Body)
	}

	var res struct {
		Data struct {
			Accounts []domain.Account `json:"accounts"`
		} `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &res); err != nil {
		t.Fatalf("json.Unmarshal response returned error: %v", err)
	}

	compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
	if diff := cmp.Diff(accounts, res.Data.Accounts, compareCreatedAt); diff != "" {
		t.Errorf("res.Data.Accounts mismatch (-want +got):\n%s", diff)
	}
}

func TestDelete(t *testing.T) {
	testCases := []struct {
		name           string
		url            string
		buildStubs     func(service *MockService)
		wantStatusCode int
	}{
		{
			name: "OK",
			url:  "/accounts/1",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Delete(gomock.Any(), gomock.Eq(int64(1))).
					Times(1).
					Return(nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			// Deleting an account that does not exist is still confirmed.
			name: "AbsentAccount",
			url:  "/accounts/404",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Delete(gomock.Any(), gomock.Eq(int64(404))).
					Times(1).
					Return(nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "InvalidID",
			url:  "/accounts/0",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "InternalError",
			url:  "/accounts/1",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Delete(gomock.Any(), gomock.Eq(int64(1))).
					Times(1).
					Return(errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			router := setupRouter(t, service)

			req := httptest.NewRequest(http.MethodDelete, tc.url, nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			if recorder.Code != tc.wantStatusCode {
				t.Errorf("status = %v, want %v; body: %v", recorder.Code, tc.wantStatusCode, recorder.Body)
			}
		})
	}
}
