package gemini

import (
	"fmt"
	"strings"

	"github.com/poiesic/lexikit/ai"
)

const enrichmentPromptTemplate = `You are a Vietnamese language expert helping create a flashcard deck.

For each word below, determine if it has MULTIPLE DISTINCT senses that a learner needs as separate cards.

Words to process: %s

For EACH word, analyze:
1. Does this word have multiple clearly different meanings?
2. If yes, create SEPARATE entries for each distinct sense

Return a JSON array where each word may produce 1 OR MORE entries:

[
  {
    "original_word": "để",
    "lemma": "để₁",
    "sense_number": 1,
    "total_senses": 2,
    "pos": "particle",
    "english_definition": "in order to, so that",
    "example_vi": "Tôi học để thi.",
    "example_en": "I study in order to take the exam."
  },
  {
    "original_word": "để",
    "lemma": "để₂",
    "sense_number": 2,
    "total_senses": 2,
    "pos": "verb",
    "english_definition": "to put, to place, to leave",
    "example_vi": "Để sách ở đây.",
    "example_en": "Put the book here."
  },
  {
    "original_word": "nhà",
    "lemma": "nhà",
    "sense_number": 1,
    "total_senses": 1,
    "pos": "noun",
    "english_definition": "house, home",
    "example_vi": "Nhà tôi ở gần đây.",
    "example_en": "My house is nearby."
  }
]

RULES:
1. Only split if meanings are CLEARLY DISTINCT (not just nuanced)
2. Function words (được, cho, mà, thì, là) often need splitting
3. Common verbs with metaphorical uses may need splitting
4. Most nouns need only 1 entry
5. Keep definitions SHORT (3-5 words)
6. Example sentences should be natural, spoken Northern Vietnamese (5-10 words)
7. Use subscript notation for multiple senses (để₁, để₂)

Return ONLY valid JSON array. No explanation.`

// enrichmentPrompt builds the batch enrichment prompt: a delimited list of
// identifiers plus instruction text.
func enrichmentPrompt(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = fmt.Sprintf("%q", w)
	}
	return fmt.Sprintf(enrichmentPromptTemplate, strings.Join(quoted, ", "))
}

const ratingPromptTemplate = `You are a Vietnamese language expert. For each word sense below, estimate how frequently a Vietnamese learner would encounter this specific meaning in everyday speech, media, and text.

Word senses to evaluate:
%s

For EACH sense, respond with:
- "common" if this sense represents >30%% of the word's usage (learners will see it often)
- "moderate" if 10-30%% of usage (learners should know it)
- "rare" if <10%% of usage (specialized, literary, or archaic - can be skipped for beginners)

Return a JSON array with your assessments:
[
  {"lemma": "là₁", "frequency": "common", "reason": "primary meaning"},
  {"lemma": "là₃", "frequency": "rare", "reason": "literary/archaic usage"}
]

Be strict - only mark as "common" or "moderate" if a learner would genuinely encounter this sense regularly. Many secondary senses are actually rare.

Return ONLY the JSON array.`

func ratingPrompt(senses []ai.SenseRef) string {
	var b strings.Builder
	for _, s := range senses {
		fmt.Fprintf(&b, "- %q: %s - %s\n", s.Lemma, s.POS, s.Definition)
	}
	return fmt.Sprintf(ratingPromptTemplate, b.String())
}

const mergePromptTemplate = `You are a Vietnamese language expert. Be VERY CONSERVATIVE about merging.

Review these word sense groups. ONLY merge if ALL criteria are met:

STRICT MERGE CRITERIA (ALL must be true):
1. EXACT same part of speech (verb+verb, noun+noun, etc.)
2. Meanings are SYNONYMOUS (not just "related")
3. The English translation would be essentially IDENTICAL
4. A standard dictionary would list them as ONE entry, not two

DEFAULT TO "keep" - when in doubt, keep separate!

MUST KEEP SEPARATE:
- Different POS (noun vs verb, preposition vs verb, adj vs adverb)
- Different core meanings (even if related)

ONLY MERGE examples:
- "to know (a fact)" + "to know (how to)" = MERGE (same verb, synonymous)
- "also, too" + "as well" = MERGE (same meaning)

WORD GROUPS:
%s

Respond with a JSON array. Use "keep" for most entries:
[
  {
    "base_word": "biết",
    "action": "merge",
    "merged_definition": "to know; to know how to",
    "merged_pos": "verb",
    "reason": "Exact same verb, synonymous meanings"
  },
  {
    "base_word": "thấy",
    "action": "keep",
    "reason": "Different senses: visual perception vs emotional feeling"
  }
]

Only return the JSON array.`

func mergePrompt(groups []ai.SenseGroup) string {
	var b strings.Builder
	for _, g := range groups {
		fmt.Fprintf(&b, "\n%s:\n", g.BaseWord)
		for _, s := range g.Senses {
			fmt.Fprintf(&b, "  - %s (%s): %q\n", s.Lemma, s.POS, s.Definition)
		}
	}
	return fmt.Sprintf(mergePromptTemplate, b.String())
}

const usagePromptTemplate = `You are a Vietnamese language teacher. The entries below have technical, grammatical definitions that a learner cannot use directly.

For EACH entry, write ONE short practical usage note (1-2 sentences, English only) explaining when and how the word is actually used, with a pattern if helpful.

Entries:
%s

Return a JSON array:
[
  {"lemma": "những", "note": "Plural marker placed before a noun: 'những quyển sách' = 'the books'. Use for an unspecified plural group."}
]

Return ONLY the JSON array.`

func usagePrompt(queries []ai.UsageQuery) string {
	var b strings.Builder
	for _, q := range queries {
		fmt.Fprintf(&b, "- %q (%s): %s\n", q.Lemma, q.POS, q.Definition)
	}
	return fmt.Sprintf(usagePromptTemplate, b.String())
}

const compoundsPromptTemplate = `You are a Vietnamese language expert. I need to identify the most important Vietnamese compound words (từ ghép) that a learner should know.

I already have these compounds: %s

Please suggest %d MORE essential Vietnamese compound words that are:
1. Commonly used in everyday speech
2. Not easily understood from individual components
3. Important for a language learner to know as a unit

Return ONLY a JSON array of strings, no explanation:
["compound1", "compound2", ...]`

// compoundsPrompt shows at most 50 known compounds to keep the prompt bounded.
func compoundsPrompt(known []string, n int) string {
	sample := known
	if len(sample) > 50 {
		sample = sample[:50]
	}
	return fmt.Sprintf(compoundsPromptTemplate, strings.Join(sample, ", "), n)
}
