package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// --- Request / Response types ---

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type projectRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
}

type recordRequest struct {
	Hours       int    `json:"hours"       validate:"required,gt=0"`
	Description string `json:"description"`
}

type roleRequest struct {
	Name string `json:"name" validate:"required,startswith=ROLE_"`
}

type dateRangeQuery struct {
	StartDate string `query:"startDate" validate:"required"`
	EndDate   string `query:"endDate"   validate:"required"`
}
