package mindmap

// SystemPrompt 是每次请求固定的 system 消息。
const SystemPrompt = `From now on you will behave as "MapGPT" and, for every text the user will submit, you are going to create a PlantUML mind map file for the inputted text to best describe main ideas. Format it as a code and remember that the mind map should be in the same language as the inputted context. You don't have to provide a general example for the mind map format before the user inputs the text.`

// DefaultPromptTemplate 是默认的 user 消息模板，占位符为 {question} 与 {context}。
const DefaultPromptTemplate = `Question:
{question}

Context:
{context}

Generate a sample PlantUML mindmap based on the provided question and context. Include only the information that is directly relevant to the question in the mindmap.

Please note the following when generating the mindmap:
1. Ensure the mindmap conforms to the PlantUML format, starting with ` + "`@startmindmap`" + ` and ending with ` + "`@endmindmap`" + `.
2. The title part should be presented directly without including "Title: ".
3. Keep the content concise and to the point, removing any redundant information.

Use the following template:

@startmindmap
* Main Topic
** Subtopic 1
*** Detail A
*** Detail B
** Subtopic 2
*** Detail C
@endmindmap

Here is an example for you:

@startmindmap
* Climate Change & Environmental Protection
** Causes
*** Greenhouse Gas Emissions
**** Fossil Fuels
**** Agriculture
*** Deforestation
** Impacts
*** Physical
**** Sea Level Rise
**** Extreme Weather
*** Societal
**** Food Security
**** Health Risks
** Solutions
*** Mitigation
**** Renewable Energy
**** Energy Efficiency
**** Carbon Capture
*** Adaptation
**** Infrastructure
**** Early Warning Systems
** International Efforts
*** Paris Agreement
*** Global Cooperation
** Public Role
*** Awareness
*** Sustainable Practices
@endmindmap
`

const (
	placeholderQuestion = "question"
	placeholderContext  = "context"
)
