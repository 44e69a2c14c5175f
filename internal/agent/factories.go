package agent

import (
	"context"
	"fmt"

	"github.com/renatus-madrigal/article-assistant/internal/article"
	"github.com/renatus-madrigal/article-assistant/internal/tool"
)

const outlineJSONRule = "Respond with a single JSON object of the form " +
	`{"outline_items": [{"title": "...", "purpose": "...", "argument": "...", "expected_conclusion": "...", "expected_length": 500}]}` +
	" and nothing else."

const styleJSONRule = "Respond with a single JSON object of the form " +
	`{"main_language": "...", "tone": "...", "voice": "...", "target_audience": "...", "formatting_preferences": "..."}` +
	" and nothing else."

const sectionJSONRule = "Respond with a single JSON object of the form " +
	`{"section_index": 0, "heading": "...", "contents": "...", "summary": "..."}` +
	" and nothing else."

// Architect designs the article structure.
type Architect struct {
	agent *Agent
}

// NewArchitect builds the architect agent. It gets the structure tools so
// the model can inspect or stage the outline while planning.
func NewArchitect(model, targetLanguage string, extra []tool.Tool, opts Options) *Architect {
	system := "You are an expert article architect. Your role is to design the structure of articles, " +
		"including creating detailed outlines and section plans based on given topics and requirements. " +
		"You are supposed to include introduction as the first and conclusion as the last sections in the outlines you create. " +
		"Utilize the StructureManager to manage and organize article structures effectively. " +
		fmt.Sprintf("Ensure all outputs are in %s. ", targetLanguage) +
		outlineJSONRule
	tools := append(append([]tool.Tool{}, extra...), tool.StructureTools()...)
	return &Architect{agent: newAgent("architect", model, system, tools, opts)}
}

// CreateOutline asks the architect for a full outline of the article.
func (a *Architect) CreateOutline(ctx context.Context, topic string, bodySections int, deps *tool.Deps) (article.Outline, error) {
	prompt := fmt.Sprintf(
		"Create a detailed outline for an article about %s. %d sections apart from introduction and conclusion in total.",
		topic, bodySections)
	content, err := a.agent.run(ctx, prompt, deps)
	if err != nil {
		return article.Outline{}, err
	}
	return decodeOutput[article.Outline](content)
}

// Stylist defines the article's style guide.
type Stylist struct {
	agent *Agent
}

// NewStylist builds the stylist agent. It carries only the base tools; the
// guide it produces is the workflow's to install.
func NewStylist(model, targetLanguage string, extra []tool.Tool, opts Options) *Stylist {
	system := "You are an expert article stylist. Your role is to define and manage the style of articles, " +
		"including setting tone, voice, and target audience based on given requirements. " +
		fmt.Sprintf("Ensure all outputs are in %s. ", targetLanguage) +
		styleJSONRule
	return &Stylist{agent: newAgent("stylist", model, system, extra, opts)}
}

// CreateStyleGuide asks the stylist for a guide fitting topic and audience.
func (s *Stylist) CreateStyleGuide(ctx context.Context, topic, audience string) (article.StyleGuide, error) {
	prompt := fmt.Sprintf(
		"Create a style guide for an article about %s. The target audience is %s.",
		topic, audience)
	content, err := s.agent.run(ctx, prompt, nil)
	if err != nil {
		return article.StyleGuide{}, err
	}
	return decodeOutput[article.StyleGuide](content)
}

// Scriber writes individual sections.
type Scriber struct {
	agent *Agent
}

// NewScriber builds the scriber agent with the full store tool set.
func NewScriber(model string, extra []tool.Tool, opts Options) *Scriber {
	system := "You are an expert article scriber. Your role is to write detailed sections of articles " +
		"based on the provided outlines, style guides, and knowledge base. " +
		"Utilize the StyleManager, KnowledgeBase, StructureManager and any other tools to ensure the content is " +
		"well-structured, stylistically consistent, and factually accurate. " +
		"You are not supposed to add a heading line in the contents you write. " +
		"The sub-headings should start from H3. " +
		"You are allowed to slightly change your writing style with a little mismatch to the style guide " +
		"to make your writing more human-like and less AI-generated, but do not deviate too much from the style guide. " +
		sectionJSONRule
	tools := append(append([]tool.Tool{}, extra...), allStoreTools()...)
	return &Scriber{agent: newAgent("scriber", model, system, tools, opts)}
}

// WriteSection asks the scriber to realize one outline item.
func (s *Scriber) WriteSection(ctx context.Context, index int, item article.OutlineItem, language string, deps *tool.Deps) (article.SectionInfo, error) {
	prompt := fmt.Sprintf(
		"Write a detailed section for the outline item titled '%s' at section index %d. "+
			"Use the purpose '%s' to guide the content. "+
			"Refer to the style guide and knowledge base as needed. "+
			"Ensure the content is in %s.",
		item.Title, index, item.Purpose, language)
	content, err := s.agent.run(ctx, prompt, deps)
	if err != nil {
		return article.SectionInfo{}, err
	}
	return decodeOutput[article.SectionInfo](content)
}

// Reviewer checks the whole article and finalizes title and keywords.
type Reviewer struct {
	agent *Agent
}

// NewReviewer builds the reviewer agent with the full store tool set. Its
// textual output is advisory; its real effects happen through tool calls.
func NewReviewer(model string, extra []tool.Tool, opts Options) *Reviewer {
	system := "You are an expert article reviewer. Your role is to review and make modifications on article sections " +
		"based on the provided outlines, style guides, and knowledge base. " +
		"You are also supposed to create a title and keywords for the article based on the content. " +
		"Utilize the StyleManager, KnowledgeBase, StructureManager and any other tools to ensure the content is " +
		"well-structured, stylistically consistent, and factually accurate."
	tools := append(append([]tool.Tool{}, extra...), allStoreTools()...)
	return &Reviewer{agent: newAgent("reviewer", model, system, tools, opts)}
}

// Review runs the reviewer over the accumulated article state.
func (r *Reviewer) Review(ctx context.Context, deps *tool.Deps) (string, error) {
	prompt := "Review the entire article for structure, style, and factual accuracy. " +
		"Make necessary modifications and suggest a title and keywords for the article."
	return r.agent.run(ctx, prompt, deps)
}

func allStoreTools() []tool.Tool {
	tools := tool.StructureTools()
	tools = append(tools, tool.StyleTools()...)
	tools = append(tools, tool.KnowledgeTools()...)
	return tools
}
