package contexthelpers

type contextKey string

const isAuthenticatedContextKey = contextKey("isAuthenticated")
const authenticatedUserEmailContextKey = contextKey("authenticatedUserEmail")
const csrfTokenContextKey = contextKey("csrfToken")
