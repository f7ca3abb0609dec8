package tecnifix

// Version is the published client version.
// 0.3.0: Add OnAuthExpired hook so a 401 on an authenticated request can
// tear down the stored session the same way an explicit logout does.
// 0.2.0: Breaking - Credentials are read per request through a TokenSource
// instead of being copied into the client at construction.
// 0.1.0: Initial client: users (login/signup), tickets CRUD, session package.
const Version = "0.3.0"
