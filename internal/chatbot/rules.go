package chatbot

import "strings"

// QuickAction is a suggested follow-up rendered as a button by the
// widget. Action is either "message:<text>" to send a canned message or
// "navigate:<target>" to move the visitor elsewhere on the site.
type QuickAction struct {
	Label  string `json:"label"`
	Action string `json:"action"`
}

// Reply is a resolved bot answer.
type Reply struct {
	Rule         string        `json:"-"`
	Text         string        `json:"text"`
	QuickActions []QuickAction `json:"quickActions,omitempty"`
}

type rule struct {
	name     string
	keywords []string
	reply    Reply
}

// rules is evaluated top to bottom; the first keyword hit wins, so the
// order encodes priority ("service" must shadow "website design" asked
// about generically).
var rules = []rule{
	{
		name:     "services",
		keywords: []string{"service", "what do you do"},
		reply: Reply{
			Text: "We offer a full range of digital services: Website Design & Development, Social Media Content Creation, AI Agents & Automation, Chatbot Development, Brand Identity Design, and Digital Marketing. Which service interests you most?",
			QuickActions: []QuickAction{
				{Label: "Website Design", Action: "message:Tell me about website design"},
				{Label: "Social Media", Action: "message:Tell me about social media"},
				{Label: "AI Solutions", Action: "message:Tell me about AI solutions"},
				{Label: "View All Services", Action: "navigate:#services"},
			},
		},
	},
	{
		name:     "website",
		keywords: []string{"website", "web design"},
		reply: Reply{
			Text: "Our website design service includes custom, responsive websites that convert visitors into customers. We create everything from landing pages to complex web applications with modern UI/UX, SEO optimization, and fast loading speeds.",
			QuickActions: []QuickAction{
				{Label: "See Portfolio", Action: "navigate:#portfolio"},
				{Label: "Get Quote", Action: "navigate:#contact"},
				{Label: "Schedule Call", Action: "navigate:/booking"},
			},
		},
	},
	{
		name:     "social_media",
		keywords: []string{"social media", "content"},
		reply: Reply{
			Text: "We create professional video and photo content for TikTok, Instagram, Facebook, and other platforms. Our social media services include content strategy, community management, analytics & reporting, and paid advertising campaigns.",
			QuickActions: []QuickAction{
				{Label: "See Our Work", Action: "navigate:#portfolio"},
				{Label: "Get Quote", Action: "navigate:#contact"},
			},
		},
	},
	{
		name:     "ai",
		keywords: []string{"ai", "chatbot", "automation"},
		reply: Reply{
			Text: "Our AI solutions include intelligent chatbots like this one, process automation, data analysis, and custom AI models. We help businesses streamline operations and enhance customer experience with 24/7 availability and natural language processing.",
			QuickActions: []QuickAction{
				{Label: "AI Examples", Action: "navigate:#portfolio"},
				{Label: "Get Quote", Action: "navigate:#contact"},
			},
		},
	},
	{
		name:     "pricing",
		keywords: []string{"price", "cost", "quote"},
		reply: Reply{
			Text: "Our pricing varies based on your specific needs and project scope. We offer custom solutions tailored to your budget. I'd be happy to connect you with our team for a free consultation and personalized quote.",
			QuickActions: []QuickAction{
				{Label: "Get Free Quote", Action: "navigate:#contact"},
				{Label: "Schedule Call", Action: "navigate:/booking"},
			},
		},
	},
	{
		name:     "contact",
		keywords: []string{"contact", "reach", "call"},
		reply: Reply{
			Text: "You can reach us at hello@nexusdigital.com or call +1 (555) 123-4567. We're available Monday-Friday, 8am-6pm. You can also schedule a free consultation or send us a message through our contact form.",
			QuickActions: []QuickAction{
				{Label: "Schedule Call", Action: "navigate:/booking"},
				{Label: "Send Message", Action: "navigate:#contact"},
			},
		},
	},
	{
		name:     "greeting",
		keywords: []string{"hello", "hi", "hey"},
		reply: Reply{
			Text: "Hello! Great to meet you! I'm here to help you learn about our digital services and get your project started. What brings you to NexusDigital today?",
			QuickActions: []QuickAction{
				{Label: "Our Services", Action: "message:Tell me about your services"},
				{Label: "Get Quote", Action: "navigate:#contact"},
			},
		},
	},
	{
		name:     "help",
		keywords: []string{"help"},
		reply: Reply{
			Text: "I'm here to help! I can tell you about our services, pricing, portfolio, or connect you with our team. What would you like to know?",
			QuickActions: []QuickAction{
				{Label: "Our Services", Action: "message:Tell me about your services"},
				{Label: "Pricing Info", Action: "message:What are your prices?"},
				{Label: "See Portfolio", Action: "navigate:#portfolio"},
				{Label: "Contact Team", Action: "navigate:#contact"},
			},
		},
	},
}

var fallback = Reply{
	Rule: "fallback",
	Text: "That's a great question! I'd love to connect you with one of our experts who can give you detailed information. You can schedule a free consultation or send us a message with your specific needs.",
	QuickActions: []QuickAction{
		{Label: "Schedule Consultation", Action: "navigate:/booking"},
		{Label: "Send Message", Action: "navigate:#contact"},
		{Label: "View Services", Action: "navigate:#services"},
	},
}

// Welcome is the opening message pushed when a session starts.
var Welcome = Reply{
	Rule: "welcome",
	Text: "Hi! I'm your digital assistant. I'm here to help you learn about our services and get started with your project. How can I help you today?",
	QuickActions: []QuickAction{
		{Label: "Our Services", Action: "message:Tell me about your services"},
		{Label: "Schedule Call", Action: "navigate:/booking"},
		{Label: "Get Quote", Action: "navigate:#contact"},
	},
}

// Respond resolves a visitor message to a bot reply. Matching is case
// insensitive substring search over the ordered rule table.
func Respond(message string) Reply {
	lower := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				reply := r.reply
				reply.Rule = r.name
				return reply
			}
		}
	}
	return fallback
}
