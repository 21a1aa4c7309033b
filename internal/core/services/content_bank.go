package services

import "github.com/mentorlab/tutor-cli/internal/core/domain"

// buildTopicBank returns the canned teaching material. Topics without
// an entry fall back to generated generic content.
func buildTopicBank() map[string]topicContent {
	return map[string]topicContent{
		"variables": {
			intros: map[domain.ExplanationStyle]string{
				domain.StyleSimple:    "A variable is a named box that holds a value. You give it a name once and then use that name wherever you need the value.",
				domain.StyleDetailed:  "A variable binds a name to a typed storage location. Declaring it fixes its type; assigning it changes the stored value without changing the type.",
				domain.StyleTechnical: "A variable is a typed storage location whose lifetime is governed by scope and escape analysis; short declarations infer the static type from the initialiser.",
			},
			example: `name := "Ada"
age := 36
fmt.Println(name, "is", age)`,
			language: "go",
			practice: "Declare three variables of different types and print them together in one sentence.",
			exercises: map[domain.SkillLevel]string{
				domain.LevelBeginner:     "Declare a variable for your name and one for your age, then print a greeting that uses both.",
				domain.LevelIntermediate: "Write a function that swaps two integer variables and returns both, without using a temporary in the caller.",
				domain.LevelAdvanced:     "Show the difference between shadowing a variable inside a block and reassigning it, and print both behaviours.",
			},
			starter: `name := ""
age := 0`,
			hint: "The := form declares and assigns in one step; plain = only assigns.",
		},
		"conditionals": {
			intros: map[domain.ExplanationStyle]string{
				domain.StyleSimple:    "A conditional lets your program choose between paths: if something is true, do this, otherwise do that.",
				domain.StyleDetailed:  "Conditionals branch on boolean expressions. An if can carry a short init statement, and switch replaces long else-if chains with readable cases.",
				domain.StyleTechnical: "Branching is expression-driven with no truthiness coercion; switch cases do not fall through unless stated, and a tagless switch is a cleaner else-if ladder.",
			},
			example: `if score >= 90 {
    fmt.Println("excellent")
} else if score >= 60 {
    fmt.Println("passed")
} else {
    fmt.Println("try again")
}`,
			language: "go",
			practice: "Write a grade classifier that prints a different message for three score ranges.",
			exercises: map[domain.SkillLevel]string{
				domain.LevelBeginner:     "Write a program that reads a number and prints whether it is positive, negative or zero.",
				domain.LevelIntermediate: "Rewrite a three-branch if/else chain as a switch and add a default case.",
				domain.LevelAdvanced:     "Use an if with an init statement to check an error and handle it without leaking the value into the outer scope.",
			},
			hint: "Every branch should be reachable; test each one with an input that triggers it.",
		},
		"loops": {
			intros: map[domain.ExplanationStyle]string{
				domain.StyleSimple:    "A loop repeats work for you. Instead of writing the same line ten times, you write it once and run it ten times.",
				domain.StyleDetailed:  "The for statement covers every loop shape: counted loops, while-style loops with only a condition, and range loops over collections.",
				domain.StyleTechnical: "for is the single looping construct; range yields index/value pairs with per-iteration copies, and break/continue with labels manage nested loop control.",
			},
			example: `total := 0
for i := 1; i <= 5; i++ {
    total += i
}
fmt.Println("sum:", total)`,
			language: "go",
			practice: "Sum the numbers from 1 to 100 with a loop and print the result.",
			exercises: map[domain.SkillLevel]string{
				domain.LevelBeginner:     "Print the numbers 1 through 10, one per line, using a loop.",
				domain.LevelIntermediate: "Loop over a slice of words and count how many have more than four letters.",
				domain.LevelAdvanced:     "Write a nested loop that finds the first pair in two slices summing to a target, and exit both loops with a label.",
			},
			starter: `for i := 1; i <= 10; i++ {
}`,
			hint: "The loop variable changes every pass; print it inside the body to watch it move.",
		},
		"functions": {
			intros: map[domain.ExplanationStyle]string{
				domain.StyleSimple:    "A function is a named recipe: you give it ingredients (parameters) and it hands back a result.",
				domain.StyleDetailed:  "Functions take typed parameters and can return multiple values, which is how results and errors travel together. Functions are values too and can be passed around.",
				domain.StyleTechnical: "Functions are first-class values with multiple returns; closures capture variables by reference, and deferred calls run at function exit in LIFO order.",
			},
			example: `func divide(a, b float64) (float64, error) {
    if b == 0 {
        return 0, errors.New("division by zero")
    }
    return a / b, nil
}`,
			language: "go",
			practice: "Write a function that returns both the minimum and maximum of a slice of ints.",
			exercises: map[domain.SkillLevel]string{
				domain.LevelBeginner:     "Write a function that takes a name and returns a greeting string, then call it twice.",
				domain.LevelIntermediate: "Write a function returning a value and an error, and handle both at the call site.",
				domain.LevelAdvanced:     "Write a function that returns a closure counting how many times it has been called.",
			},
			hint: "Name the function after what it returns, not after how it works.",
		},
		"slices_arrays": {
			intros: map[domain.ExplanationStyle]string{
				domain.StyleSimple:    "A slice is a list that grows as you add to it. You append items, read them by position, and loop over them.",
				domain.StyleDetailed:  "An array has a fixed length baked into its type; a slice is a flexible window onto an array that grows via append and is what you use day to day.",
				domain.StyleTechnical: "A slice is a pointer, length and capacity over a backing array; append may reallocate, so aliased slices can diverge after growth.",
			},
			example: `nums := []int{3, 1, 4}
nums = append(nums, 1, 5)
fmt.Println(nums, len(nums))`,
			language: "go",
			practice: "Build a slice of your five favourite words, append a sixth, and print the length before and after.",
			exercises: map[domain.SkillLevel]string{
				domain.LevelBeginner:     "Create a slice of three numbers, append two more, and print every element with its index.",
				domain.LevelIntermediate: "Write a function that reverses a slice of ints in place.",
				domain.LevelAdvanced:     "Demonstrate two slices sharing a backing array, then show how append breaks the sharing once capacity is exceeded.",
			},
			hint: "append returns a new slice header; always assign its result back.",
		},
		"maps": {
			intros: map[domain.ExplanationStyle]string{
				domain.StyleSimple:    "A map is a lookup table: you store a value under a key and get it back by that key, like a phone book.",
				domain.StyleDetailed:  "Maps associate unique keys with values in constant time on average. Reading a missing key yields the zero value, so use the two-value form to tell absence apart.",
				domain.StyleTechnical: "Maps are unordered hash tables; iteration order is randomised, reads on missing keys return zero values, and concurrent writes require external locking.",
			},
			example: `ages := map[string]int{"ada": 36}
ages["alan"] = 41
if age, ok := ages["ada"]; ok {
    fmt.Println("ada is", age)
}`,
			language: "go",
			practice: "Count how often each word appears in a sentence using a map from word to count.",
			exercises: map[domain.SkillLevel]string{
				domain.LevelBeginner:     "Make a map from three country names to their capitals and print one of them.",
				domain.LevelIntermediate: "Write a word-frequency counter and print the counts sorted by word.",
				domain.LevelAdvanced:     "Invert a map from string to int into a map from int to slice of strings, handling duplicate values.",
			},
			hint: "The two-value read, value, ok := m[key], distinguishes a stored zero from a missing key.",
		},
		"strings": {
			intros: map[domain.ExplanationStyle]string{
				domain.StyleSimple:    "A string is a piece of text. You can join strings, cut them apart, and search inside them.",
				domain.StyleDetailed:  "Strings are immutable sequences of bytes that usually hold UTF-8 text; the strings package covers searching, splitting and joining, and a builder assembles text efficiently.",
				domain.StyleTechnical: "Strings are immutable byte slices; ranging decodes runes, indexing yields bytes, and repeated concatenation is quadratic without strings.Builder.",
			},
			example: `s := "adaptive learning"
fmt.Println(strings.ToUpper(s))
fmt.Println(strings.Split(s, " "))`,
			language: "go",
			practice: "Take a sentence and print it reversed word by word.",
			exercises: map[domain.SkillLevel]string{
				domain.LevelBeginner:     "Join your first and last name into one string and print its length.",
				domain.LevelIntermediate: "Write a function that reports whether a string is a palindrome, ignoring case and spaces.",
				domain.LevelAdvanced:     "Show the difference between byte length and rune count for a string containing accented characters.",
			},
			hint: "len gives bytes, not characters; range a string to walk its runes.",
		},
		"structs_methods": {
			intros: map[domain.ExplanationStyle]string{
				domain.StyleSimple:    "A struct bundles related values under one name, and a method is a function that belongs to that bundle.",
				domain.StyleDetailed:  "Structs group typed fields into one value; methods attach behaviour via a receiver, and pointer receivers let a method modify the struct it belongs to.",
				domain.StyleTechnical: "Structs are value types with promoted fields through embedding; method sets differ between value and pointer receivers, which decides interface satisfaction.",
			},
			example: `type Account struct {
    Owner   string
    Balance float64
}

func (a *Account) Deposit(amount float64) {
    a.Balance += amount
}`,
			language: "go",
			practice: "Define a Rectangle struct with an Area method and print the area of two rectangles.",
			exercises: map[domain.SkillLevel]string{
				domain.LevelBeginner:     "Define a Person struct with name and age, create two people, and print them.",
				domain.LevelIntermediate: "Give a Counter struct an Increment method and explain why it needs a pointer receiver.",
				domain.LevelAdvanced:     "Embed one struct in another and show which methods and fields are promoted to the outer type.",
			},
			hint: "If a method must change the receiver, the receiver has to be a pointer.",
		},
		"error_handling": {
			intros: map[domain.ExplanationStyle]string{
				domain.StyleSimple:    "Errors are values a function hands back when something went wrong. You check them right where they happen.",
				domain.StyleDetailed:  "Functions return an error as their last result; callers check it before using the other results. Wrapping with %w keeps the cause attached for later inspection.",
				domain.StyleTechnical: "Errors are values satisfying a one-method interface; wrap with %w to build inspectable chains for errors.Is and errors.As, and reserve panic for programmer errors.",
			},
			example: `data, err := os.ReadFile("notes.txt")
if err != nil {
    return fmt.Errorf("load notes: %w", err)
}
fmt.Println(len(data), "bytes")`,
			language: "go",
			practice: "Call a function that can fail and print a friendly message instead of crashing.",
			exercises: map[domain.SkillLevel]string{
				domain.LevelBeginner:     "Open a file that does not exist and print the error instead of ignoring it.",
				domain.LevelIntermediate: "Write a parsing function that wraps its underlying error with context about what it was parsing.",
				domain.LevelAdvanced:     "Define a sentinel error, wrap it two layers deep, and detect it at the top with errors.Is.",
			},
			hint: "Handle an error once: either act on it or wrap and return it, never both.",
		},
		"concurrency": {
			intros: map[domain.ExplanationStyle]string{
				domain.StyleSimple:    "Concurrency lets your program do several things at once, like downloading two files at the same time instead of one after the other.",
				domain.StyleDetailed:  "Goroutines are cheap concurrent functions; channels move values between them safely. A WaitGroup waits for a batch of goroutines to finish.",
				domain.StyleTechnical: "Goroutines multiplex onto OS threads; channels provide synchronised communication with select for multiplexing, and the race detector is the arbiter of shared-state correctness.",
			},
			example: `var wg sync.WaitGroup
for _, url := range urls {
    wg.Add(1)
    go func(u string) {
        defer wg.Done()
        fetch(u)
    }(url)
}
wg.Wait()`,
			language: "go",
			practice: "Start three goroutines that each print a message, and wait for all of them before exiting.",
			exercises: map[domain.SkillLevel]string{
				domain.LevelBeginner:     "Launch a goroutine that prints a message and make main wait long enough to see it.",
				domain.LevelIntermediate: "Use a channel to send ten numbers from a producer goroutine to a consumer that sums them.",
				domain.LevelAdvanced:     "Build a worker pool of three goroutines draining a jobs channel, shut it down cleanly, and verify it with the race detector.",
			},
			hint: "Never share memory without synchronisation; pass values over a channel instead.",
		},
	}
}
