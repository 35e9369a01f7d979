// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/courier/internal/api"
)

// Greetings are matched as whole words against the case-folded message.
var greetingWords = map[string]bool{
	"hello": true, "hi": true, "hey": true, "hiya": true, "greetings": true,
	"howdy": true, "hola": true, "bonjour": true, "yo": true,
}

// Greetings in scripts without word separators are matched as substrings.
var greetingPhrases = []string{
	"good morning", "good afternoon", "good evening",
	"你好", "您好", "嗨", "早上好", "晚上好", "こんにちは", "안녕",
}

var questionWords = map[string]bool{
	"what": true, "why": true, "how": true, "who": true, "when": true,
	"where": true, "which": true, "is": true, "are": true, "can": true,
	"could": true, "do": true, "does": true, "did": true, "will": true,
	"would": true, "should": true,
}

// Chinese sentence-final particles that mark a question.
var questionSuffixes = []string{"吗", "呢", "么"}

var folder = cases.Fold()

// Analyze computes the metadata reported for a message. The text is NFKC
// normalised first, so full-width punctuation such as "？" counts as "?".
func Analyze(message string) api.MessageMetadata {
	text := norm.NFKC.String(strings.TrimSpace(message))
	folded := folder.String(text)
	words := tokenize(folded)

	meta := api.MessageMetadata{
		WordCount:   countWords(folded),
		HasQuestion: isQuestion(folded, words),
		HasGreeting: isGreeting(folded, words),
	}

	switch {
	case meta.WordCount == 0:
		meta.ResponseType = api.ResponseTypeEmpty
	case meta.HasQuestion:
		meta.ResponseType = api.ResponseTypeQuestion
	case meta.HasGreeting:
		meta.ResponseType = api.ResponseTypeGreeting
	default:
		meta.ResponseType = api.ResponseTypeStatement
	}
	return meta
}

// Compose builds the reply text for a processed message.
func Compose(name, message string, meta api.MessageMetadata) string {
	switch meta.ResponseType {
	case api.ResponseTypeEmpty:
		return fmt.Sprintf("Hello, %s! Your message was empty.", name)
	case api.ResponseTypeQuestion:
		greeting := ""
		if meta.HasGreeting {
			greeting = "Hello! "
		}
		return fmt.Sprintf("%sGood question, %s. You asked: %q", greeting, name, strings.TrimSpace(message))
	case api.ResponseTypeGreeting:
		return fmt.Sprintf("Hello, %s! Nice to hear from you.", name)
	default:
		return fmt.Sprintf("Thanks, %s. Received your message (%d %s).", name, meta.WordCount, plural(meta.WordCount, "word", "words"))
	}
}

// countWords counts whitespace or punctuation separated words. Each Han,
// Hiragana or Katakana rune counts as one word since those scripts do not
// separate words with spaces.
func countWords(s string) int {
	count := 0
	inWord := false
	for _, r := range s {
		switch {
		case unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana):
			count++
			inWord = false
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'':
			if !inWord {
				count++
				inWord = true
			}
		default:
			inWord = false
		}
	}
	return count
}

// tokenize splits s into lowercase latin-style words.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'')
	})
}

func isQuestion(s string, words []string) bool {
	if strings.Contains(s, "?") {
		return true
	}
	if len(words) > 0 && questionWords[words[0]] && len(words) > 1 {
		return true
	}
	trimmed := strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	for _, suffix := range questionSuffixes {
		if strings.HasSuffix(trimmed, suffix) {
			return true
		}
	}
	return false
}

func isGreeting(s string, words []string) bool {
	for _, w := range words {
		if greetingWords[w] {
			return true
		}
	}
	for _, phrase := range greetingPhrases {
		if strings.Contains(s, phrase) {
			return true
		}
	}
	return false
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
