package chat

import "strings"

// knowledgeEntry maps trigger keywords to a canned assistant reply. The
// first entry whose keyword appears in the message wins, so more specific
// topics are listed before broad ones.
type knowledgeEntry struct {
	Topic    string
	Keywords []string
	Reply    string
}

var knowledgeTable = []knowledgeEntry{
	{
		Topic:    "greeting",
		Keywords: []string{"hello", "hi ", "hey", "namaste"},
		Reply:    "Hi! I'm the WasteWise assistant. Ask me about scheduling pickups, scrap rates, recycling tips, or your green points.",
	},
	{
		Topic:    "pickup",
		Keywords: []string{"pickup", "collect", "schedule", "doorstep"},
		Reply:    "You can book a doorstep pickup in three quick steps: choose the waste type and rough quantity, pick a date and time slot, then share your address. You'll get a WW tracking ID right away.",
	},
	{
		Topic:    "rates",
		Keywords: []string{"rate", "price", "estimate", "worth", "sell"},
		Reply:    "Current per-kg rates: metal ₹25, e-waste ₹30, paper ₹10, plastic ₹7, glass ₹4. Condition and lot size adjust the final quote, and working devices are priced separately. Try the price estimator for an exact band.",
	},
	{
		Topic:    "ewaste",
		Keywords: []string{"ewaste", "e-waste", "phone", "laptop", "electronic"},
		Reply:    "Electronics should never go in household bins. We collect phones, laptops and appliances, wipe data-bearing devices, and route them to certified recyclers. Working devices earn you resale value instead of scrap rates.",
	},
	{
		Topic:    "rewards",
		Keywords: []string{"reward", "point", "redeem", "voucher"},
		Reply:    "Every pickup and purchase earns green points. Open the rewards page to see your balance and swap points for vouchers and discounts.",
	},
	{
		Topic:    "tracking",
		Keywords: []string{"track", "status", "where is", "order"},
		Reply:    "Use your WW tracking ID on the tracking page to see pickup or order status. Store orders move from Processing to Shipped, Out for Delivery, and Delivered.",
	},
	{
		Topic:    "segregation",
		Keywords: []string{"segregat", "separate", "sort", "bin"},
		Reply:    "Keep three streams at home: wet (kitchen and garden waste), dry (paper, plastic, metal, glass), and reject (sanitary and medical). Clean, sorted dry waste also fetches better scrap rates.",
	},
	{
		Topic:    "plastic",
		Keywords: []string{"plastic", "bottle", "bag"},
		Reply:    "Rinse plastic containers and remove caps before recycling. Bottles, containers and rigid packaging are accepted; soiled wrappers and multilayer sachets belong in reject waste.",
	},
	{
		Topic:    "compost",
		Keywords: []string{"compost", "organic", "kitchen", "food waste"},
		Reply:    "Kitchen scraps turn to compost in six to eight weeks. Balance greens (peels, leftovers) with browns (dry leaves, cardboard), keep it moist, and turn the pile weekly.",
	},
	{
		Topic:    "contact",
		Keywords: []string{"contact", "support", "help", "human"},
		Reply:    "Our support team is available 9 AM to 6 PM, Monday through Saturday. You can also raise a ticket from the app and we'll call you back.",
	},
}

const fallbackReply = "I can help with pickups, scrap rates, recycling tips, tracking and rewards. Could you rephrase your question?"

// Respond answers a message from the local knowledge table alone.
func Respond(message string) string {
	normalized := " " + strings.ToLower(strings.TrimSpace(message)) + " "
	if strings.TrimSpace(message) == "" {
		return fallbackReply
	}
	for _, entry := range knowledgeTable {
		for _, keyword := range entry.Keywords {
			if strings.Contains(normalized, keyword) {
				return entry.Reply
			}
		}
	}
	return fallbackReply
}
