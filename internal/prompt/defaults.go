package prompt

// defaults is the built-in catalog. IDs are stable: completions reference
// them, so entries may be appended but never renumbered.
var defaults = []Prompt{
	{1, "Compliment someone genuinely.", "social"},
	{2, "Call or text a family member to check on them.", "family"},
	{3, "Help a stranger today in any small way.", "community"},
	{4, "Leave a positive comment on social media.", "digital"},
	{5, "Pick up litter you see on the ground.", "environment"},
	{6, "Support a local business with kind words or a review.", "community"},
	{7, "Hold the door open for someone.", "courtesy"},
	{8, "Write a short thank-you note to someone.", "gratitude"},
	{9, "Donate clothes or items you no longer need.", "charity"},
	{10, "Smile at a stranger and say hello.", "social"},
	{11, "Let someone go ahead of you in line.", "courtesy"},
	{12, "Offer to help a coworker with their tasks.", "workplace"},
	{13, "Send an encouraging message to a friend.", "friendship"},
	{14, "Pay for someone's coffee or meal.", "generosity"},
	{15, "Volunteer for a local charity or cause.", "community"},
	{16, "Listen actively to someone who needs to talk.", "empathy"},
	{17, "Forgive someone who has wronged you.", "forgiveness"},
	{18, "Share your knowledge or skills with others.", "teaching"},
	{19, "Give a genuine compliment to a service worker.", "appreciation"},
	{20, "Plant a flower or tree in your community.", "environment"},
	{21, "Ask a neighbor if they need anything from the store.", "community"},
	{22, "Reach out to a friend you haven't talked to in a while.", "friendship"},
	{23, "Tell someone specifically what you admire about them.", "social"},
	{24, "Write a positive review for a colleague's work.", "workplace"},
	{25, "Bring a snack to share with your team.", "workplace"},
	{26, "Thank a teacher or mentor who made a difference.", "gratitude"},
	{27, "Cook or bake something for someone.", "generosity"},
	{28, "Leave an extra generous tip.", "generosity"},
	{29, "Answer a question in an online community you know well.", "digital"},
	{30, "Share a useful resource with someone who needs it.", "digital"},
	{31, "Carry a reusable bag and skip single-use plastic today.", "environment"},
	{32, "Recycle something that would otherwise be thrown away.", "environment"},
	{33, "Be patient with someone who is slow or struggling.", "empathy"},
	{34, "Ask someone how they are really doing, and wait for the answer.", "empathy"},
	{35, "Let go of a small grudge.", "forgiveness"},
	{36, "Apologize sincerely for something you got wrong.", "forgiveness"},
	{37, "Teach someone a skill you are good at.", "teaching"},
	{38, "Thank a delivery driver or cleaner by name.", "appreciation"},
	{39, "Write a note of appreciation to a healthcare worker.", "appreciation"},
	{40, "Spend uninterrupted time with a family member.", "family"},
	{41, "Share a favorite memory with a relative.", "family"},
	{42, "Give your seat to someone on public transport.", "courtesy"},
	{43, "Return a shopping cart for someone.", "courtesy"},
	{44, "Donate to a cause you care about, however small.", "charity"},
	{45, "Give blood or register as a donor.", "charity"},
	{46, "Do one kind thing for yourself without guilt.", "self-care"},
	{47, "Write down three things you are grateful for.", "gratitude"},
	{48, "Leave a kind note for a stranger to find.", "community"},
	{49, "Offer to take a photo for a group of tourists.", "courtesy"},
	{50, "Celebrate someone else's success out loud.", "social"},
}

// Defaults returns a copy of the built-in catalog.
func Defaults() []Prompt {
	out := make([]Prompt, len(defaults))
	copy(out, defaults)
	return out
}
