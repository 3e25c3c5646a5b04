package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "strings" // strings splits comma-separated list values
)

// Config holds all runtime configuration values.  Each field corresponds to
// one or more environment variables.  The types reflect how the values are
// used: strings for identifiers and secrets, ints for durations and costs,
// slices for the email lists.
type Config struct {
    Env              string   // application environment (e.g. "dev", "prod")
    Port             string   // HTTP port to listen on
    DBUser           string   // database username
    DBPass           string   // database password (optional)
    DBHost           string   // database host address
    DBPort           string   // database port number
    DBName           string   // database name
    SessionSecret    string   // secret used to sign session tokens
    SessionTTLMin    int      // session lifetime in minutes
    BcryptCost       int      // bcrypt cost for password hashing
    AllowedEmails    []string // emails permitted to create an account (lower-cased)
    NotifyRecipients []string // recipients of sign-off notification mail
    SMTPHost         string   // outgoing mail host
    SMTPPort         int      // outgoing mail port
    SMTPUser         string   // SMTP username
    SMTPPass         string   // SMTP password
    SMTPFrom         string   // From address on notification mail
    StaticDir        string   // optional directory of static front-end files
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  The signup
// allow-list and the notification recipient list must both be non-empty;
// a deployment without them cannot do anything useful.
func Load() Config {
    cfg := Config{
        Env:              must("APP_ENV"),
        Port:             must("APP_PORT"),
        DBUser:           must("DB_USER"),
        DBPass:           os.Getenv("DB_PASS"), // empty allowed
        DBHost:           must("DB_HOST"),
        DBPort:           must("DB_PORT"),
        DBName:           must("DB_NAME"),
        SessionSecret:    must("SESSION_SECRET"),
        SessionTTLMin:    mustInt("SESSION_TTL_MIN"),
        BcryptCost:       mustInt("BCRYPT_COST"),
        AllowedEmails:    splitList(must("ALLOWED_EMAILS")),
        NotifyRecipients: splitList(must("NOTIFY_RECIPIENTS")),
        SMTPHost:         must("SMTP_HOST"),
        SMTPPort:         mustInt("SMTP_PORT"),
        SMTPUser:         must("SMTP_USER"),
        SMTPPass:         must("SMTP_PASS"),
        SMTPFrom:         must("SMTP_FROM"),
        StaticDir:        os.Getenv("STATIC_DIR"), // empty disables static serving
    }
    if len(cfg.AllowedEmails) == 0 {
        log.Fatal("ALLOWED_EMAILS must list at least one address")
    }
    if len(cfg.NotifyRecipients) == 0 {
        log.Fatal("NOTIFY_RECIPIENTS must list at least one address")
    }
    return cfg
}

// EmailAllowed reports whether the given address may create an account.
// Comparison is case-insensitive; the list is normalized on load.
func (c Config) EmailAllowed(email string) bool {
    email = strings.ToLower(strings.TrimSpace(email))
    for _, e := range c.AllowedEmails {
        if e == email {
            return true
        }
    }
    return false
}

// splitList parses a comma-separated env value into trimmed, lower-cased,
// non-empty entries.
func splitList(s string) []string {
    var out []string
    for _, p := range strings.Split(s, ",") {
        p = strings.ToLower(strings.TrimSpace(p))
        if p != "" {
            out = append(out, p)
        }
    }
    return out
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
