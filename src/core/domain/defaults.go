package domain

// DefaultLoginCodeExpiryMinutes is quoted in the login email when the
// database does not report an expiry.
const DefaultLoginCodeExpiryMinutes = 60

// DefaultLogModule is recorded when a log entry names no module.
const DefaultLogModule = "general"

// DefaultFirstName is used in the welcome message when the user has none.
const DefaultFirstName = "User"
