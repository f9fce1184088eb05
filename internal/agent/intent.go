package agent

import (
	"regexp"
	"sort"
	"strings"
)

// Intent labels for customer messages.
const (
	IntentGreeting       = "greeting"
	IntentIdentityVerify = "identity_verification"
	IntentBalance        = "balance_inquiry"
	IntentTransactions   = "transaction_history"
	IntentUpdateInfo     = "update_information"
	IntentFileManagement = "file_management"
	IntentDocumentOCR    = "document_ocr"
	IntentGeneralSupport = "general_support"
	IntentEscalation     = "escalation"
	IntentGeneralInquiry = "general_inquiry"
)

// Entity keys extracted alongside the intent.
const (
	EntityAccountNumber = "account_number"
	EntityUpdateField   = "update_field"
	EntityNewEmail      = "new_email"
	EntityNewPhone      = "new_phone"
)

type ScoredIntent struct {
	Intent string
	Score  float64
}

// Analysis is the result of classifying one customer message.
type Analysis struct {
	Primary    string
	Confidence float64
	All        []ScoredIntent
	Entities   map[string]string
}

var (
	accountNumberRe = regexp.MustCompile(`\b\d{6,}\b`)
	emailRe         = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe         = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
)

var (
	identityKeywords    = []string{"verify", "identity", "login", "authenticate", "who am i", "my name"}
	balanceKeywords     = []string{"balance", "how much", "account total", "money", "funds", "available", "checking", "savings"}
	transactionKeywords = []string{"history", "transactions", "recent", "statements", "spent", "charges", "deposits", "withdrawals", "activity"}
	updateKeywords      = []string{"update", "change", "modify", "new", "correct"}
	contactKeywords     = []string{"address", "phone", "email", "number", "contact"}
	fileKeywords        = []string{"upload", "document", "file", "statement", "download", "pdf", "attachment", "scan", "image", "photo"}
	ocrKeywords         = []string{"read", "extract", "text", "ocr", "analyze", "check", "receipt"}
	helpKeywords        = []string{"help", "how", "what", "explain", "support", "assist", "can you"}
	escalationKeywords  = []string{"human", "representative", "manager", "escalate", "complain", "supervisor", "agent", "person", "speak to"}
	greetingKeywords    = []string{"hello", "hi", "good morning", "good afternoon", "good evening", "hey", "greetings"}
)

// Analyze scores the message against each intent's keyword set and extracts
// entities. The highest score wins; with no signal at all the message falls
// back to general_inquiry.
func Analyze(message string) Analysis {
	lower := strings.ToLower(message)
	var intents []ScoredIntent
	entities := map[string]string{}

	if score := keywordScore(lower, identityKeywords); score > 0 {
		intents = append(intents, ScoredIntent{IntentIdentityVerify, float64(score) * 0.3})
	}

	// A long digit run looks like an account number and strongly suggests a
	// verification attempt.
	if match := accountNumberRe.FindString(message); match != "" {
		entities[EntityAccountNumber] = match
		intents = append(intents, ScoredIntent{IntentIdentityVerify, 0.5})
	}

	if score := keywordScore(lower, balanceKeywords); score > 0 {
		intents = append(intents, ScoredIntent{IntentBalance, float64(score) * 0.4})
	}

	if score := keywordScore(lower, transactionKeywords); score > 0 {
		intents = append(intents, ScoredIntent{IntentTransactions, float64(score) * 0.35})
	}

	updateScore := keywordScore(lower, updateKeywords)
	contactScore := keywordScore(lower, contactKeywords)
	if updateScore > 0 || contactScore > 0 {
		intents = append(intents, ScoredIntent{IntentUpdateInfo, float64(updateScore+contactScore) * 0.3})

		if strings.Contains(lower, "email") {
			entities[EntityUpdateField] = "email"
			if match := emailRe.FindString(message); match != "" {
				entities[EntityNewEmail] = match
			}
		}
		if strings.Contains(lower, "phone") || strings.Contains(lower, "number") {
			entities[EntityUpdateField] = "phone"
			if match := phoneRe.FindString(message); match != "" {
				entities[EntityNewPhone] = match
			}
		}
		if strings.Contains(lower, "address") {
			entities[EntityUpdateField] = "address"
		}
	}

	fileScore := keywordScore(lower, fileKeywords)
	ocrScore := keywordScore(lower, ocrKeywords)
	if fileScore > 0 || ocrScore > 0 {
		if ocrScore > 0 {
			intents = append(intents, ScoredIntent{IntentDocumentOCR, float64(fileScore+ocrScore) * 0.4})
		} else {
			intents = append(intents, ScoredIntent{IntentFileManagement, float64(fileScore) * 0.35})
		}
	}

	if score := keywordScore(lower, helpKeywords); score > 0 {
		intents = append(intents, ScoredIntent{IntentGeneralSupport, float64(score) * 0.2})
	}

	if score := keywordScore(lower, escalationKeywords); score > 0 {
		intents = append(intents, ScoredIntent{IntentEscalation, float64(score) * 0.5})
	}

	if containsAny(lower, greetingKeywords) && len(strings.Fields(lower)) < 10 {
		intents = append(intents, ScoredIntent{IntentGreeting, 0.8})
	}

	sort.SliceStable(intents, func(i, j int) bool {
		return intents[i].Score > intents[j].Score
	})

	analysis := Analysis{
		Primary:    IntentGeneralInquiry,
		Confidence: 0.1,
		All:        intents,
		Entities:   entities,
	}
	if len(intents) > 0 {
		analysis.Primary = intents[0].Intent
		analysis.Confidence = intents[0].Score
	}
	return analysis
}

func keywordScore(lower string, keywords []string) int {
	score := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	return score
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
