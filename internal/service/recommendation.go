package service

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// fallbackNotice prefixes every canned text so callers can tell generated
// advice from the static fallback.
const fallbackNotice = "GPT API is not available. Here is a basic recommendation:\n"

// maxAdviceWords caps generated advice length. The canned texts are already
// short.
const maxAdviceWords = 200

// ChatCompleter is the generator surface the recommendation service needs.
// A nil completer switches the service to fallback-only mode.
type ChatCompleter interface {
	ChatComplete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// RecommendationService produces diabetes management advice. Glucose values
// are taken in the caller's display unit. No method ever returns an error:
// generator trouble is logged and answered with the canned text for the
// value's band.
type RecommendationService struct {
	llm ChatCompleter
}

var _ IRecommendationService = (*RecommendationService)(nil)

// NewRecommendationService creates a new RecommendationService instance.
// Pass nil to run without a generator.
func NewRecommendationService(llm ChatCompleter) *RecommendationService {
	return &RecommendationService{llm: llm}
}

// GetRecommendation produces advice for a single logged reading.
func (s *RecommendationService) GetRecommendation(ctx context.Context, username string, bloodSugar float64, meal, exercise string) string {
	if s.llm == nil {
		return fallbackNotice + basicRecommendation(bloodSugar)
	}

	systemPrompt := `You are a helpful diabetes management assistant.
Provide personalized, friendly, and actionable advice based on the user's data.
Focus on practical suggestions for diet, exercise, and lifestyle changes.
Keep responses conversational and encouraging, but also informative.
IMPORTANT: Limit your response to 200 words maximum.`

	userPrompt := fmt.Sprintf(`User: %s

Today's Data:
- Blood Sugar Level: %.1f mg/dL (%s)
- Meal: %s
- Exercise: %s

Please provide personalized advice for diabetes management based on this data.
Consider the blood sugar level, meal choices, and exercise routine.
Give specific, actionable recommendations for diet, exercise, and lifestyle.`,
		username, bloodSugar, analyzeBloodSugar(bloodSugar), meal, exercise)

	reply, err := s.llm.ChatComplete(ctx, systemPrompt, userPrompt)
	if err != nil {
		log.Printf("[RecommendationService] GetRecommendation fell back for %s: %v", username, err)
		return fallbackNotice + basicRecommendation(bloodSugar)
	}
	return limitWords(reply, maxAdviceWords)
}

// GetMealSuggestions produces meal ideas appropriate for the given glucose
// level, optionally honoring free-text preferences.
func (s *RecommendationService) GetMealSuggestions(ctx context.Context, bloodSugar float64, preferences string) string {
	if s.llm == nil {
		return fallbackNotice + basicMealSuggestions(bloodSugar)
	}

	systemPrompt := "You are a nutrition expert specializing in diabetes management. Provide practical meal suggestions. IMPORTANT: Limit your response to 200 words maximum."
	userPrompt := fmt.Sprintf(`Blood sugar level: %.1f mg/dL
User preferences: %s

Provide 3-4 meal suggestions that would be appropriate for this blood sugar level.
Include breakfast, lunch, dinner, and snack options. Focus on balanced nutrition
with appropriate carbohydrate content for diabetes management.`, bloodSugar, preferences)

	reply, err := s.llm.ChatComplete(ctx, systemPrompt, userPrompt)
	if err != nil {
		log.Printf("[RecommendationService] GetMealSuggestions fell back: %v", err)
		return fallbackNotice + basicMealSuggestions(bloodSugar)
	}
	return limitWords(reply, maxAdviceWords)
}

// GetExerciseRecommendations produces activity advice that is safe for the
// given glucose level.
func (s *RecommendationService) GetExerciseRecommendations(ctx context.Context, bloodSugar float64, currentExercise string) string {
	if s.llm == nil {
		return fallbackNotice + basicExerciseRecommendations(bloodSugar)
	}

	systemPrompt := "You are a fitness expert specializing in diabetes management. Provide safe and effective exercise recommendations. IMPORTANT: Limit your response to 200 words maximum."
	userPrompt := fmt.Sprintf(`Blood sugar level: %.1f mg/dL
Current exercise: %s

Provide exercise recommendations that are safe and beneficial for this blood sugar level.
Include both aerobic and strength training suggestions, with appropriate intensity levels.`, bloodSugar, currentExercise)

	reply, err := s.llm.ChatComplete(ctx, systemPrompt, userPrompt)
	if err != nil {
		log.Printf("[RecommendationService] GetExerciseRecommendations fell back: %v", err)
		return fallbackNotice + basicExerciseRecommendations(bloodSugar)
	}
	return limitWords(reply, maxAdviceWords)
}

// analyzeBloodSugar names the band a reading falls into, for prompt context.
func analyzeBloodSugar(v float64) string {
	switch {
	case v < 70:
		return "Low (Hypoglycemia)"
	case v < 100:
		return "Normal (Fasting)"
	case v < 140:
		return "Normal (Post-meal)"
	case v < 200:
		return "Elevated"
	default:
		return "High (Hyperglycemia)"
	}
}

func basicRecommendation(v float64) string {
	switch {
	case v < 70:
		return fmt.Sprintf("Your blood sugar is low (%.1f mg/dL). Consider having a small snack with carbohydrates and protein. Monitor your levels closely and consult your healthcare provider if this happens frequently.", v)
	case v > 200:
		return fmt.Sprintf("Your blood sugar is elevated (%.1f mg/dL). Consider increasing your physical activity, monitoring your carbohydrate intake, and staying hydrated. If this persists, consult your healthcare provider.", v)
	default:
		return fmt.Sprintf("Your blood sugar level of %.1f mg/dL looks good! Keep up with your current routine. Remember to maintain regular meal times, stay active, and monitor your levels consistently.", v)
	}
}

func basicMealSuggestions(v float64) string {
	switch {
	case v < 100:
		return `Meal Suggestions for Normal Blood Sugar:

Breakfast: Oatmeal with berries and nuts, or whole grain toast with avocado
Lunch: Grilled chicken salad with mixed greens and olive oil dressing
Dinner: Baked salmon with quinoa and steamed vegetables
Snacks: Greek yogurt with berries, or apple with almond butter`
	case v < 140:
		return `Meal Suggestions for Post-Meal Normal Blood Sugar:

Breakfast: Greek yogurt with granola and fruit
Lunch: Turkey and vegetable wrap with whole grain tortilla
Dinner: Lean beef stir-fry with brown rice and vegetables
Snacks: Hummus with carrot sticks, or mixed nuts`
	default:
		return `Meal Suggestions for Elevated Blood Sugar:

Breakfast: Scrambled eggs with spinach and whole grain toast
Lunch: Grilled fish with quinoa and roasted vegetables
Dinner: Chicken breast with sweet potato and green beans
Snacks: Cottage cheese with cucumber, or hard-boiled eggs`
	}
}

func basicExerciseRecommendations(v float64) string {
	switch {
	case v < 70:
		return "Your blood sugar is low. Avoid intense exercise until your levels stabilize. Consider light walking or gentle stretching after having a snack."
	case v > 250:
		return "Your blood sugar is high. Avoid intense exercise and check for ketones if you have type 1 diabetes. Light walking may help lower blood sugar gradually."
	default:
		return fmt.Sprintf("Great time for exercise! Your blood sugar of %.1f mg/dL is in a safe range. Consider 30 minutes of moderate activity like walking, swimming, or cycling. Don't forget to monitor your levels during and after exercise.", v)
	}
}

// limitWords truncates text to at most max words, appending an ellipsis when
// anything was cut.
func limitWords(text string, max int) string {
	words := strings.Fields(text)
	if len(words) <= max {
		return text
	}
	return strings.Join(words[:max], " ") + "..."
}
