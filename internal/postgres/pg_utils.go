// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

type QualifiedName struct {
	schema string
	name   string
}

var (
	errUnexpectedQualifiedName = errors.New("unexpected qualified name format")
	errInvalidURL              = errors.New("invalid URL")
)

// NewQualifiedName parses a `table` or `schema.table` name.
func NewQualifiedName(s string) (*QualifiedName, error) {
	parts := strings.Split(s, ".")
	switch {
	case len(parts) == 1 && parts[0] != "":
		return &QualifiedName{name: parts[0]}, nil
	case len(parts) == 2 && parts[0] != "" && parts[1] != "":
		return &QualifiedName{schema: parts[0], name: parts[1]}, nil
	default:
		return nil, fmt.Errorf("%q: %w", s, errUnexpectedQualifiedName)
	}
}

// String returns the name as it should appear in generated SQL. Unqualified
// plain lower case names are left as they are so the output stays readable.
func (qn *QualifiedName) String() string {
	if qn.schema == "" {
		return QuoteIdentifierIfNeeded(qn.name)
	}
	return QuoteIdentifierIfNeeded(qn.schema) + "." + QuoteIdentifierIfNeeded(qn.name)
}

func (qn *QualifiedName) Schema() string {
	return qn.schema
}

func (qn *QualifiedName) Name() string {
	return qn.name
}

func QuoteIdentifier(s string) string {
	if IsQuotedIdentifier(s) {
		return s
	}
	return pq.QuoteIdentifier(s)
}

var plainIdentifierRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// QuoteIdentifierIfNeeded only quotes identifiers that postgres would not
// resolve to the same name unquoted.
func QuoteIdentifierIfNeeded(s string) string {
	if plainIdentifierRegex.MatchString(s) {
		return s
	}
	return QuoteIdentifier(s)
}

func IsQuotedIdentifier(s string) bool {
	return len(s) > 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`)
}

// QuoteLiteral returns s as a postgres string literal, doubling embedded
// single quotes.
func QuoteLiteral(s string) string {
	return pq.QuoteLiteral(s)
}

func ParseConfig(pgurl string) (*pgx.ConnConfig, error) {
	pgCfg, err := pgx.ParseConfig(pgurl)
	if err == nil {
		return pgCfg, nil
	}

	urlErr := &url.Error{}
	if !errors.As(err, &urlErr) {
		return nil, fmt.Errorf("failed parsing postgres connection string: %w", MapError(err))
	}

	// passwords with reserved characters need to be escaped for the url to be
	// parsed
	escapedURL, err := escapeConnectionURL(pgurl)
	if err != nil {
		return nil, fmt.Errorf("failed to escape connection URL: %w", err)
	}
	return pgx.ParseConfig(escapedURL)
}

var postgresURLRegex = regexp.MustCompile(`^(postgres(?:ql)?://)(.+)@([^@]+)$`)

func escapeConnectionURL(rawURL string) (string, error) {
	matches := postgresURLRegex.FindStringSubmatch(rawURL)
	if matches == nil {
		return "", errInvalidURL
	}

	scheme, userInfo, hostAndPath := matches[1], matches[2], matches[3]
	username, password, found := strings.Cut(userInfo, ":")
	if !found {
		return rawURL, nil
	}
	if username == "" {
		return "", errInvalidURL
	}

	if unescaped, err := url.PathUnescape(password); err == nil {
		password = unescaped
	}

	return fmt.Sprintf("%s%s:%s@%s", scheme, username, url.QueryEscape(password), hostAndPath), nil
}
